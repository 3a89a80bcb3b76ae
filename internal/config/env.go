package config

import (
	"os"
	"strconv"
)

// Environment variable name constants for SMARTCTX_ prefixed overrides.
const (
	EnvMode          = "SMARTCTX_MODE"
	EnvTokenBudget   = "SMARTCTX_TOKEN_BUDGET"
	EnvModel         = "SMARTCTX_MODEL"
	EnvTokenizer     = "SMARTCTX_TOKENIZER"
	EnvEmbedder      = "SMARTCTX_EMBEDDER"
	EnvMCPCommand    = "SMARTCTX_MCP_COMMAND"
	EnvWASMModelPath = "SMARTCTX_WASM_MODEL_PATH"
	EnvCacheDir      = "SMARTCTX_CACHE_DIR"
	EnvMaxCacheAgeMS = "SMARTCTX_MAX_CACHE_AGE_MS"
	EnvLogFormat     = "SMARTCTX_LOG_FORMAT"
	EnvLogLevel      = "SMARTCTX_LOG_LEVEL"
)

// buildEnvMap reads SMARTCTX_* environment variables and returns a flat map
// suitable for use with a koanf confmap provider. Only non-empty env vars
// that parse successfully are included; invalid numeric values are silently
// skipped so a bad env var does not block the rest of the resolution
// pipeline.
func buildEnvMap() map[string]any {
	m := make(map[string]any)

	if v := os.Getenv(EnvMode); v != "" {
		m["mode"] = v
	}
	if v := os.Getenv(EnvTokenBudget); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["token_budget"] = n
		}
	}
	if v := os.Getenv(EnvModel); v != "" {
		m["model"] = v
	}
	if v := os.Getenv(EnvTokenizer); v != "" {
		m["tokenizer"] = v
	}
	if v := os.Getenv(EnvEmbedder); v != "" {
		m["embedder"] = v
	}
	if v := os.Getenv(EnvMCPCommand); v != "" {
		m["mcp_command"] = v
	}
	if v := os.Getenv(EnvWASMModelPath); v != "" {
		m["wasm_model_path"] = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		m["cache_dir"] = v
	}
	if v := os.Getenv(EnvMaxCacheAgeMS); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			m["max_cache_age_ms"] = n
		}
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		m["log_format"] = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		m["log_level"] = v
	}

	return m
}
