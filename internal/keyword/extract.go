package keyword

import (
	"regexp"
	"strings"
)

const (
	// MinKeywordLen and MaxKeywordLen bound extracted query keywords (spec
	// §4.6: "3..=40", distinct from the lexer's 3..49 bound).
	MinKeywordLen = 3
	MaxKeywordLen = 40
)

var nonWord = regexp.MustCompile(`[^a-z0-9_\s]`)

// ExtractQueryKeywords tokenizes query the same way internal/lexer does --
// lowercase, blank non-word characters, split on whitespace -- but applies
// this package's own stopword list and length bound.
func ExtractQueryKeywords(query string) []string {
	lowered := strings.ToLower(query)
	cleaned := nonWord.ReplaceAllString(lowered, " ")
	fields := strings.Fields(cleaned)

	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < MinKeywordLen || len(tok) > MaxKeywordLen {
			continue
		}
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
