// Package modelmeta provides a built-in table of maximum context window
// sizes for known model identifiers (spec §4.11, §6: ModelMeta.maxTokens).
package modelmeta

import "strings"

// FallbackMaxTokens is used when the queried model is not present in the
// table (spec §6: "32000 used as fallback").
const FallbackMaxTokens = 32000

// table maps a model identifier prefix to its context window size, in
// tokens. Prefixes are matched longest-first so a specific snapshot id
// (e.g. "gpt-4o-2024-08-06") falls back to its family entry
// ("gpt-4o") when no exact match exists.
var table = map[string]int{
	"gpt-4o":           128000,
	"gpt-4-turbo":      128000,
	"gpt-4.1":          1000000,
	"gpt-4":            8192,
	"gpt-3.5-turbo":    16385,
	"o1":               200000,
	"o3":               200000,
	"claude-3-opus":    200000,
	"claude-3-sonnet":  200000,
	"claude-3-haiku":   200000,
	"claude-3-5-sonnet": 200000,
	"claude-3-7-sonnet": 200000,
	"claude-sonnet-4":  200000,
	"claude-opus-4":    200000,
	"gemini-1.5-pro":   2000000,
	"gemini-1.5-flash": 1000000,
	"gemini-2.0-flash": 1000000,
}

// Table is the built-in pipeline.ModelMeta implementation.
type Table struct{}

// MaxTokens looks up model by longest matching prefix in the built-in
// table. ok is false when no entry matches, signaling callers to use
// FallbackMaxTokens.
func (Table) MaxTokens(model string) (int, bool) {
	model = strings.ToLower(model)

	bestLen := -1
	best := 0
	for prefix, tokens := range table {
		if strings.HasPrefix(model, prefix) && len(prefix) > bestLen {
			bestLen = len(prefix)
			best = tokens
		}
	}
	if bestLen < 0 {
		return 0, false
	}
	return best, true
}
