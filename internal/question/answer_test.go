package question

import "testing"

func TestCheckAnswer(t *testing.T) {
	capitals := []string{"London", "Paris", "Rome"}

	tests := []struct {
		name       string
		userAnswer string
		correctKey string
		options    []string
		want       bool
	}{
		{"letter match", "B", "B", capitals, true},
		{"letter mismatch", "A", "B", capitals, false},
		{"letter lowercase", "b", "B", capitals, true},
		{"letter padded", "  B ", "B", capitals, true},
		{"out of range letter", "Z", "B", capitals, false},
		{"legacy text match", "Paris", "B", capitals, true},
		{"legacy text lowercase", "paris", "B", capitals, true},
		{"legacy text padded", " Rome ", "C", capitals, true},
		{"legacy text wrong option", "London", "B", capitals, false},
		{"legacy text unknown", "Madrid", "B", capitals, false},
		{"empty answer", "", "B", capitals, false},
		{"no options legacy", "Paris", "B", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAnswer(tt.userAnswer, tt.correctKey, tt.options)
			if got != tt.want {
				t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.userAnswer, tt.correctKey, got, tt.want)
			}
		})
	}
}

func TestOptionKey(t *testing.T) {
	if OptionKey(0) != "A" || OptionKey(3) != "D" {
		t.Errorf("OptionKey mapping broken: %s %s", OptionKey(0), OptionKey(3))
	}
}
