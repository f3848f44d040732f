package seed

import (
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// BuiltinSource catalog source name when nothing was uploaded
const BuiltinSource = "builtin"

// Categories in display order
var Categories = []string{
	"General",
	"Respiratory",
	"Digestive",
	"Neurological",
	"Musculoskeletal",
	"Cardiovascular",
	"Skin",
	"Mental Health",
}

var symptoms = []entity.Symptom{
	{ID: "fever", Name: "Fever", Description: "Body temperature above normal", Category: "General"},
	{ID: "fatigue", Name: "Fatigue", Description: "Feeling tired or exhausted", Category: "General"},
	{ID: "chills", Name: "Chills", Description: "Feeling cold with shivering", Category: "General"},
	{ID: "sweating", Name: "Excessive Sweating", Description: "More sweating than usual", Category: "General"},
	{ID: "weakness", Name: "Weakness", Description: "Feeling physically weak", Category: "General"},

	{ID: "cough", Name: "Cough", Description: "Persistent coughing", Category: "Respiratory"},
	{ID: "shortness_breath", Name: "Shortness of Breath", Description: "Difficulty breathing", Category: "Respiratory"},
	{ID: "chest_pain", Name: "Chest Pain", Description: "Pain in chest area", Category: "Respiratory"},
	{ID: "sore_throat", Name: "Sore Throat", Description: "Throat pain or irritation", Category: "Respiratory"},
	{ID: "runny_nose", Name: "Runny Nose", Description: "Nasal discharge", Category: "Respiratory"},
	{ID: "congestion", Name: "Nasal Congestion", Description: "Blocked or stuffy nose", Category: "Respiratory"},

	{ID: "nausea", Name: "Nausea", Description: "Feeling sick to stomach", Category: "Digestive"},
	{ID: "vomiting", Name: "Vomiting", Description: "Throwing up", Category: "Digestive"},
	{ID: "diarrhea", Name: "Diarrhea", Description: "Loose or watery stools", Category: "Digestive"},
	{ID: "constipation", Name: "Constipation", Description: "Difficulty passing stools", Category: "Digestive"},
	{ID: "abdominal_pain", Name: "Abdominal Pain", Description: "Stomach or belly pain", Category: "Digestive"},
	{ID: "loss_appetite", Name: "Loss of Appetite", Description: "Not feeling hungry", Category: "Digestive"},

	{ID: "headache", Name: "Headache", Description: "Pain in head or neck area", Category: "Neurological"},
	{ID: "dizziness", Name: "Dizziness", Description: "Feeling lightheaded or unsteady", Category: "Neurological"},
	{ID: "confusion", Name: "Confusion", Description: "Difficulty thinking clearly", Category: "Neurological"},
	{ID: "memory_loss", Name: "Memory Problems", Description: "Trouble remembering things", Category: "Neurological"},
	{ID: "seizures", Name: "Seizures", Description: "Uncontrolled electrical activity in brain", Category: "Neurological"},

	{ID: "joint_pain", Name: "Joint Pain", Description: "Pain in joints", Category: "Musculoskeletal"},
	{ID: "muscle_aches", Name: "Muscle Aches", Description: "Muscle pain or soreness", Category: "Musculoskeletal"},
	{ID: "back_pain", Name: "Back Pain", Description: "Pain in back area", Category: "Musculoskeletal"},
	{ID: "stiffness", Name: "Joint Stiffness", Description: "Difficulty moving joints", Category: "Musculoskeletal"},

	{ID: "palpitations", Name: "Heart Palpitations", Description: "Feeling heart beating fast or irregularly", Category: "Cardiovascular"},
	{ID: "high_bp", Name: "High Blood Pressure", Description: "Elevated blood pressure readings", Category: "Cardiovascular"},
	{ID: "swollen_feet", Name: "Swollen Feet/Legs", Description: "Fluid retention in lower extremities", Category: "Cardiovascular"},

	{ID: "rash", Name: "Skin Rash", Description: "Red, irritated skin", Category: "Skin"},
	{ID: "itching", Name: "Itching", Description: "Urge to scratch skin", Category: "Skin"},
	{ID: "bruising", Name: "Easy Bruising", Description: "Bruises appearing easily", Category: "Skin"},

	{ID: "anxiety", Name: "Anxiety", Description: "Feeling worried or nervous", Category: "Mental Health"},
	{ID: "depression", Name: "Sadness/Depression", Description: "Persistent sad feelings", Category: "Mental Health"},
	{ID: "insomnia", Name: "Sleep Problems", Description: "Trouble sleeping", Category: "Mental Health"},
}

// Symptoms copy of the built-in catalog
func Symptoms() []entity.Symptom {
	out := make([]entity.Symptom, len(symptoms))
	copy(out, symptoms)
	return out
}

// Catalog built-in catalog stamped with loadedAt
func Catalog(loadedAt time.Time) entity.SymptomCatalog {
	return entity.SymptomCatalog{
		Symptoms:  Symptoms(),
		UpdatedAt: loadedAt,
		Source:    BuiltinSource,
	}
}
