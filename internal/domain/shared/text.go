package shared

import "strings"

// ContainsWordIgnoreCase reports whether sentence contains word as a whole
// space-separated word, ignoring case.
func ContainsWordIgnoreCase(sentence, word string) bool {
	word = strings.TrimSpace(word)
	if word == "" || strings.ContainsAny(word, " \t") {
		return false
	}
	for _, w := range strings.Fields(sentence) {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// ContainsAnyWord reports whether sentence contains any of keywords as a whole word.
func ContainsAnyWord(sentence string, keywords []string) bool {
	for _, k := range keywords {
		if ContainsWordIgnoreCase(sentence, k) {
			return true
		}
	}
	return false
}
