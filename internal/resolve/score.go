package resolve

import "strings"

// TokenOverlap scores how similar two names are by counting shared
// tokens. Names are lowercased and split on whitespace and punctuation,
// so "2022-04-20-Tauben" and "Tauben.Sullivan.4.20.22.mp4" share the
// "tauben" and "20" tokens.
func TokenOverlap(query, candidate string) int {
	qTokens := tokenize(query)
	cTokens := tokenize(candidate)
	score := 0
	for tok := range qTokens {
		if cTokens[tok] {
			score++
		}
	}
	return score
}

func tokenize(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		}
		return true
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}
