package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsOnly(t *testing.T) {
	clearSmartctxEnv(t)
	dir := t.TempDir()

	resolved, err := Resolve(ResolveOptions{TargetDir: dir, GlobalConfigPath: filepath.Join(dir, "missing-global.toml")})
	require.NoError(t, err)

	assert.Equal(t, "balanced", resolved.Settings.Mode)
	assert.Equal(t, SourceDefault, resolved.Sources["mode"])
}

func TestResolveRepoFileOverridesDefault(t *testing.T) {
	clearSmartctxEnv(t)
	dir := t.TempDir()

	repoConfig := "mode = \"conservative\"\ntoken_budget = 20000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".smartctx.toml"), []byte(repoConfig), 0o644))

	resolved, err := Resolve(ResolveOptions{TargetDir: dir, GlobalConfigPath: filepath.Join(dir, "missing-global.toml")})
	require.NoError(t, err)

	assert.Equal(t, "conservative", resolved.Settings.Mode)
	assert.Equal(t, 20000, resolved.Settings.TokenBudget)
	assert.Equal(t, SourceRepo, resolved.Sources["mode"])
}

func TestResolveEnvOverridesRepoFile(t *testing.T) {
	clearSmartctxEnv(t)
	dir := t.TempDir()

	repoConfig := "mode = \"conservative\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".smartctx.toml"), []byte(repoConfig), 0o644))
	t.Setenv(EnvMode, "balanced")

	resolved, err := Resolve(ResolveOptions{TargetDir: dir, GlobalConfigPath: filepath.Join(dir, "missing-global.toml")})
	require.NoError(t, err)

	assert.Equal(t, "balanced", resolved.Settings.Mode)
	assert.Equal(t, SourceEnv, resolved.Sources["mode"])
}

func TestResolveCLIFlagHasHighestPrecedence(t *testing.T) {
	clearSmartctxEnv(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".smartctx.toml"), []byte("mode = \"conservative\"\n"), 0o644))
	t.Setenv(EnvMode, "balanced")

	resolved, err := Resolve(ResolveOptions{
		TargetDir:        dir,
		GlobalConfigPath: filepath.Join(dir, "missing-global.toml"),
		CLIFlags:         map[string]any{"mode": "off"},
	})
	require.NoError(t, err)

	assert.Equal(t, "off", resolved.Settings.Mode)
	assert.Equal(t, SourceFlag, resolved.Sources["mode"])
}

func TestResolveMissingRepoFileIsNotAnError(t *testing.T) {
	clearSmartctxEnv(t)
	dir := t.TempDir()

	_, err := Resolve(ResolveOptions{TargetDir: dir, GlobalConfigPath: filepath.Join(dir, "missing-global.toml")})
	assert.NoError(t, err)
}
