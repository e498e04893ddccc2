package logotype

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameToText converts an underscore separated name parameter
// ("teenage_mutant_ninja_turtles") into display text.
func NameToText(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// normalizeText applies the default phrase and optional upper-casing.
// It never operates on an absent value: blank input is replaced first.
func normalizeText(s, fallback string, upper bool) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = fallback
	}
	if upper {
		// Casers keep state and are not safe for concurrent use.
		s = cases.Upper(language.Und).String(s)
	}
	return s
}

// splitWords returns the first n words joined by single spaces, and the
// rest joined the same way.
func splitWords(s string, n int) (head, tail string) {
	words := strings.Fields(s)
	if n > len(words) {
		n = len(words)
	}
	if n < 0 {
		n = 0
	}
	return strings.Join(words[:n], " "), strings.Join(words[n:], " ")
}
