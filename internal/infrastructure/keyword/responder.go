package keyword

import (
	"math/rand"
	"strings"

	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type rule struct {
	keywords []string
	response string
}

// Checked top to bottom, first hit wins.
var rules = []rule{
	{
		keywords: []string{"fever", "temperature"},
		response: "Fever can be a sign of various conditions. If your temperature is above 100.4°F (38°C), it's important to stay hydrated, rest, and monitor your symptoms. If fever persists for more than 3 days or is accompanied by severe symptoms, please consult a healthcare provider.",
	},
	{
		keywords: []string{"headache", "head pain"},
		response: "Headaches can have many causes including stress, dehydration, lack of sleep, or underlying conditions. Try resting in a quiet, dark room, staying hydrated, and applying a cold or warm compress. If headaches are severe, frequent, or accompanied by other concerning symptoms, please seek medical attention.",
	},
	{
		keywords: []string{"cough", "coughing"},
		response: "Coughs can be dry or productive and may indicate respiratory issues. Stay hydrated, use a humidifier, and avoid irritants. If the cough persists for more than 2 weeks, produces blood, or is accompanied by fever and difficulty breathing, please consult a healthcare provider.",
	},
	{
		keywords: []string{"stomach", "nausea", "digestive"},
		response: "Digestive issues can be caused by various factors including diet, stress, or infections. Try eating bland foods, staying hydrated, and avoiding spicy or fatty foods. If symptoms persist or worsen, or if you experience severe pain, please seek medical attention.",
	},
	{
		keywords: []string{"thank", "thanks"},
		response: "You're welcome! I'm here to help with any health-related questions you might have. Remember, while I can provide general information, it's always best to consult with a healthcare professional for personalized medical advice.",
	},
	{
		keywords: []string{"emergency", "urgent"},
		response: "⚠️ If you're experiencing a medical emergency, please call your local emergency services immediately (911 in the US). For urgent but non-emergency situations, contact your healthcare provider or visit an urgent care center.",
	},
}

var defaultResponses = []string{
	"I understand your concern. Can you provide more specific details about your symptoms, such as when they started and their severity?",
	"That's a valid health question. While I can provide general information, I'd recommend discussing this with a healthcare professional for personalized advice.",
	"Thank you for sharing that information. Based on what you've described, here are some general considerations, but please consult a medical professional for proper evaluation.",
	"I'm here to help with health-related questions. Could you tell me more about what you're experiencing so I can provide better guidance?",
}

type keywordResponder struct {
	pick func(n int) int
}

// NewResponder keyword responder with a random fallback
func NewResponder() repository.Responder {
	return &keywordResponder{pick: rand.Intn}
}

// NewResponderWithPicker pick(n) must return a value in [0, n).
func NewResponderWithPicker(pick func(n int) int) repository.Responder {
	if pick == nil {
		pick = rand.Intn
	}
	return &keywordResponder{pick: pick}
}

// Respond never fails; unmatched input gets one of the default replies.
func (r *keywordResponder) Respond(text string) string {
	if response, ok := Match(text); ok {
		return response
	}
	return defaultResponses[r.pick(len(defaultResponses))]
}

// Match the canned response for the first keyword group found in text
func Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rl := range rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.response, true
			}
		}
	}
	return "", false
}

// DefaultResponses copy of the fallback set
func DefaultResponses() []string {
	out := make([]string, len(defaultResponses))
	copy(out, defaultResponses)
	return out
}
