package config

import "github.com/ternary/smartcontext/internal/embedding"

// DefaultSettings returns a new Settings populated with smartctx's built-in
// defaults. Callers receive a fresh copy each time; mutating the returned
// value does not affect subsequent calls.
func DefaultSettings() *Settings {
	return &Settings{
		Mode:          "balanced",
		TokenBudget:   0,
		Model:         "",
		Tokenizer:     "cl100k_base",
		Embedder:      "none",
		MCPCommand:    "",
		WASMModelPath: "",
		CacheDir:      embedding.DefaultCacheDir(),
		MaxCacheAgeMS: embedding.DefaultMaxAgeMS,
		LogFormat:     "text",
		LogLevel:      "info",
	}
}
