package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/config"
)

func TestConfigDebugCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range configCmd.Commands() {
		if cmd.Use == "debug" {
			found = true
		}
	}
	require.True(t, found, "config debug subcommand must be registered under config")
}

func TestConfigCommandRegisteredOnRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "config" {
			found = true
		}
	}
	assert.True(t, found, "config subcommand must be registered on root command")
}

func TestConfigDebugFieldsIncludesEverySetting(t *testing.T) {
	resolved := &config.ResolvedConfig{
		Settings: config.DefaultSettings(),
		Sources:  config.SourceMap{"mode": config.SourceDefault},
	}

	fields := configDebugFields(resolved)

	byName := make(map[string]configDebugField, len(fields))
	for _, f := range fields {
		byName[f.Field] = f
	}

	assert.Contains(t, byName, "mode")
	assert.Contains(t, byName, "embedder")
	assert.Contains(t, byName, "token_budget")
	assert.Equal(t, "default", byName["mode"].Source)
	assert.Equal(t, "default", byName["embedder"].Source)
}
