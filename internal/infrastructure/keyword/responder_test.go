package keyword

import (
	"strings"
	"testing"
)

func TestRespondKeywordGroups(t *testing.T) {
	tests := []struct {
		input  string
		prefix string
	}{
		{"I have a FEVER since yesterday", "Fever can be"},
		{"my temperature is high", "Fever can be"},
		{"Head pain all day", "Headaches can"},
		{"terrible headache", "Headaches can"},
		{"dry coughing at night", "Coughs can"},
		{"my stomach hurts", "Digestive issues"},
		{"Nausea after lunch", "Digestive issues"},
		{"thanks a lot", "You're welcome"},
		{"Thank you", "You're welcome"},
		{"is this an emergency?", "⚠️"},
		{"URGENT question", "⚠️"},
	}

	r := NewResponder()
	for _, tt := range tests {
		got := r.Respond(tt.input)
		if !strings.HasPrefix(got, tt.prefix) {
			t.Fatalf("%q: expected reply starting with %q, got %q", tt.input, tt.prefix, got)
		}
	}
}

func TestRespondPriority(t *testing.T) {
	r := NewResponder()
	fever, _ := Match("fever")

	// fever outranks every later group
	for _, input := range []string{"fever and cough", "cough with fever", "thanks, the fever is gone", "urgent: fever"} {
		if got := r.Respond(input); got != fever {
			t.Fatalf("%q: expected fever response, got %q", input, got)
		}
	}

	cough, _ := Match("cough")
	if got := r.Respond("stomach ache and a cough"); got != cough {
		t.Fatalf("cough should outrank stomach, got %q", got)
	}
}

func TestRespondDefault(t *testing.T) {
	defaults := DefaultResponses()
	if len(defaults) == 0 {
		t.Fatalf("default set is empty")
	}

	r := NewResponder()
	for i := 0; i < 50; i++ {
		got := r.Respond("hello there")
		if !member(defaults, got) {
			t.Fatalf("reply %q is not in the default set", got)
		}
	}
}

func TestRespondDefaultUsesPicker(t *testing.T) {
	defaults := DefaultResponses()
	for i := range defaults {
		idx := i
		r := NewResponderWithPicker(func(n int) int {
			if n != len(defaults) {
				t.Fatalf("picker called with %d, want %d", n, len(defaults))
			}
			return idx
		})
		if got := r.Respond(""); got != defaults[idx] {
			t.Fatalf("expected default %d, got %q", idx, got)
		}
	}
}

func TestDefaultResponsesIsCopy(t *testing.T) {
	d := DefaultResponses()
	d[0] = "changed"
	if DefaultResponses()[0] == "changed" {
		t.Fatalf("DefaultResponses exposed the internal slice")
	}
}

func member(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
