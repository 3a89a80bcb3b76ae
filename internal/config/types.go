// Package config resolves smartctx's runtime settings from a layered stack
// of sources: built-in defaults, a user-global TOML file, a repo-local TOML
// file, SMARTCTX_* environment variables, and CLI flags, adapted from the
// teacher's harvx.toml resolver pipeline.
package config

// Settings is the fully resolved configuration for a single smartctx
// invocation. Zero values are never meaningful on their own; Resolve always
// starts from DefaultSettings so every field carries an authoritative value
// by the time a caller sees it.
type Settings struct {
	// Mode selects the selection policy: "off", "conservative", or
	// "balanced".
	Mode string `toml:"mode"`

	// TokenBudget overrides the model-derived budget when non-zero.
	TokenBudget int `toml:"token_budget"`

	// Model identifies the downstream model consulted for budget derivation
	// when TokenBudget is zero.
	Model string `toml:"model"`

	// Tokenizer selects the token estimator: "cl100k_base" or "none".
	Tokenizer string `toml:"tokenizer"`

	// Embedder selects the embedding backend: "mcp", "wasm", or "none".
	Embedder string `toml:"embedder"`

	// MCPCommand is the command line used to launch the MCP embedding host
	// when Embedder is "mcp".
	MCPCommand string `toml:"mcp_command"`

	// WASMModelPath is the path to the compiled embedding module when
	// Embedder is "wasm".
	WASMModelPath string `toml:"wasm_model_path"`

	// CacheDir is the directory the embedding cache reads and writes.
	CacheDir string `toml:"cache_dir"`

	// MaxCacheAgeMS is the age, in milliseconds, past which a cached
	// embedding entry is evicted.
	MaxCacheAgeMS int64 `toml:"max_cache_age_ms"`

	// LogFormat controls structured log output: "text" or "json".
	LogFormat string `toml:"log_format"`

	// LogLevel controls the minimum emitted log level: "debug", "info",
	// "warn", or "error".
	LogLevel string `toml:"log_level"`
}
