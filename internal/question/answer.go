package question

import "strings"

// CheckAnswer compares a learner's stored answer against the correct key.
// Returns true if the answer is correct.
//
// Two answer encodings coexist in historical data and both must keep working:
//   - a single letter key ("B")
//   - the full option text ("Paris"), written by older clients
//
// Normalization rules:
//   - Whitespace is trimmed on both sides
//   - Comparison is case-insensitive
//   - A single character in A-D is compared to the key directly
//   - Anything else is looked up in the options list and its index is
//     converted to a letter before comparing
func CheckAnswer(userAnswer, correctKey string, options []string) bool {
	userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
	correctKey = strings.ToUpper(strings.TrimSpace(correctKey))
	if userAnswer == "" {
		return false
	}

	if isLetterKey(userAnswer) {
		return userAnswer == correctKey
	}
	return checkLegacyText(userAnswer, correctKey, options)
}

// isLetterKey reports whether s is a single option letter A-D.
func isLetterKey(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'D'
}

// checkLegacyText matches the answer against the option texts and compares
// the matched index, as a letter, to the key. No match means incorrect,
// never an error.
func checkLegacyText(userAnswer, correctKey string, options []string) bool {
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), userAnswer) {
			return OptionKey(i) == correctKey
		}
	}
	return false
}
