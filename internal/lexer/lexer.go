// Package lexer implements the tokenizer and stopword filter shared by the
// TF-IDF scorer and (indirectly, via its own narrower list) the keyword
// extractor. Tokenization is pure and deterministic, applied identically to
// corpus documents and queries.
package lexer

import (
	"regexp"
	"strings"
)

const (
	// MinTokenLen is the shortest token length kept after filtering.
	MinTokenLen = 3
	// MaxTokenLen is the longest token length kept after filtering.
	MaxTokenLen = 49
)

// nonWord matches any rune that is not a lowercase letter, digit, underscore,
// or whitespace. It is used to blank out punctuation before splitting.
var nonWord = regexp.MustCompile(`[^a-z0-9_\s]`)

// Tokenize lowercases text, blanks every non-word/non-space character,
// splits on whitespace runs, and keeps tokens of length
// MinTokenLen..MaxTokenLen that are not in the stopword set.
//
// Pipeline (spec §4.1):
//  1. lowercase
//  2. replace every character not in [a-z0-9_\s] with a single space
//  3. split on runs of whitespace
//  4. keep tokens of length 3..49
//  5. drop stopwords
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := nonWord.ReplaceAllString(lowered, " ")
	fields := strings.Fields(cleaned)

	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < MinTokenLen || len(tok) > MaxTokenLen {
			continue
		}
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
