package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearSmartctxEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvMode, EnvTokenBudget, EnvModel, EnvTokenizer, EnvEmbedder,
		EnvMCPCommand, EnvWASMModelPath, EnvCacheDir, EnvMaxCacheAgeMS,
		EnvLogFormat, EnvLogLevel,
	} {
		t.Setenv(name, "")
	}
}

func TestBuildEnvMapEmpty(t *testing.T) {
	clearSmartctxEnv(t)

	m := buildEnvMap()
	assert.Empty(t, m)
}

func TestBuildEnvMapMode(t *testing.T) {
	clearSmartctxEnv(t)
	t.Setenv(EnvMode, "conservative")

	m := buildEnvMap()
	assert.Equal(t, "conservative", m["mode"])
}

func TestBuildEnvMapTokenBudget(t *testing.T) {
	clearSmartctxEnv(t)
	t.Setenv(EnvTokenBudget, "50000")

	m := buildEnvMap()
	assert.Equal(t, 50000, m["token_budget"])
}

func TestBuildEnvMapTokenBudgetInvalidSkipped(t *testing.T) {
	clearSmartctxEnv(t)
	t.Setenv(EnvTokenBudget, "not-a-number")

	m := buildEnvMap()
	_, ok := m["token_budget"]
	assert.False(t, ok)
}

func TestBuildEnvMapMaxCacheAgeMS(t *testing.T) {
	clearSmartctxEnv(t)
	t.Setenv(EnvMaxCacheAgeMS, "3600000")

	m := buildEnvMap()
	assert.Equal(t, int64(3600000), m["max_cache_age_ms"])
}

func TestBuildEnvMapAllFields(t *testing.T) {
	clearSmartctxEnv(t)

	t.Setenv(EnvMode, "off")
	t.Setenv(EnvEmbedder, "wasm")
	t.Setenv(EnvModel, "claude-sonnet-4")
	t.Setenv(EnvTokenizer, "none")
	t.Setenv(EnvWASMModelPath, "/models/embed.wasm")

	m := buildEnvMap()

	assert.Equal(t, "off", m["mode"])
	assert.Equal(t, "wasm", m["embedder"])
	assert.Equal(t, "claude-sonnet-4", m["model"])
	assert.Equal(t, "none", m["tokenizer"])
	assert.Equal(t, "/models/embed.wasm", m["wasm_model_path"])
}
