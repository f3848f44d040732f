package seed

import "github.com/yourusername/symptom-checker/internal/domain/entity"

// Greeting first assistant message of every conversation
const Greeting = "Hello! I'm your AI health assistant. I can help you understand symptoms, provide health information, and guide you through wellness questions. How can I assist you today?"

// PredictionTemplate the fixed result every symptom check returns. Each call
// builds fresh slices so callers may modify the result.
func PredictionTemplate() entity.Prediction {
	return entity.Prediction{
		Diseases: []entity.Disease{
			{
				Name:        "Common Cold",
				Confidence:  0.85,
				Severity:    entity.LevelLow,
				Description: "A viral infection of the upper respiratory tract",
			},
			{
				Name:        "Influenza (Flu)",
				Confidence:  0.72,
				Severity:    entity.LevelMedium,
				Description: "A viral infection that attacks the respiratory system",
			},
			{
				Name:        "Migraine",
				Confidence:  0.68,
				Severity:    entity.LevelMedium,
				Description: "A type of headache characterized by severe throbbing pain",
			},
		},
		Remedies: []entity.Remedy{
			{
				Type:        entity.RemedyHome,
				Title:       "Rest and Hydration",
				Description: "Get plenty of sleep and drink lots of fluids",
				Urgency:     entity.LevelLow,
			},
			{
				Type:        entity.RemedyMedication,
				Title:       "Over-the-Counter Pain Relief",
				Description: "Consider acetaminophen or ibuprofen for symptom relief",
				Urgency:     entity.LevelMedium,
			},
			{
				Type:        entity.RemedyLifestyle,
				Title:       "Avoid Triggers",
				Description: "Stay away from known triggers and maintain regular sleep schedule",
				Urgency:     entity.LevelLow,
			},
		},
		Precautions: []string{
			"Monitor symptoms for worsening",
			"Stay hydrated and get plenty of rest",
			"Avoid close contact with others to prevent spread",
			"Seek medical attention if symptoms persist beyond 7-10 days",
		},
	}
}
