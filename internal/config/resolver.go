package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// ResolveOptions configures the multi-source configuration resolution.
type ResolveOptions struct {
	// TargetDir is the directory to search for .smartctx.toml. Defaults to
	// "." if empty.
	TargetDir string

	// GlobalConfigPath overrides the default
	// ~/.config/smartctx/config.toml. Useful for testing.
	GlobalConfigPath string

	// CLIFlags holds explicit CLI flag overrides (highest precedence). Keys
	// are flat Settings field names: "mode", "token_budget", etc.
	CLIFlags map[string]any
}

// ResolvedConfig is the result of multi-source configuration resolution.
type ResolvedConfig struct {
	// Settings is the final merged settings ready for use by the engine.
	Settings *Settings

	// Sources tracks which layer each field value came from.
	Sources SourceMap
}

// Resolve runs the 5-layer configuration resolution pipeline:
//  1. Built-in defaults
//  2. Global config (~/.config/smartctx/config.toml)
//  3. Repository config (.smartctx.toml in TargetDir)
//  4. Environment variables (SMARTCTX_* prefix)
//  5. CLI flags (highest precedence)
//
// Missing config files are silently ignored. Invalid files return errors.
func Resolve(opts ResolveOptions) (*ResolvedConfig, error) {
	k := koanf.New(".")
	sources := make(SourceMap)

	if err := loadLayer(k, settingsToFlatMap(DefaultSettings()), sources, SourceDefault); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			globalPath = filepath.Join(home, ".config", "smartctx", "config.toml")
		}
	}
	if globalPath != "" {
		if err := loadFileLayer(k, globalPath, sources, SourceGlobal); err != nil {
			return nil, err
		}
	}

	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = "."
	}
	repoPath := filepath.Join(targetDir, ".smartctx.toml")
	if err := loadFileLayer(k, repoPath, sources, SourceRepo); err != nil {
		return nil, err
	}

	if envMap := buildEnvMap(); len(envMap) > 0 {
		if err := loadLayer(k, envMap, sources, SourceEnv); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	if len(opts.CLIFlags) > 0 {
		if err := loadLayer(k, opts.CLIFlags, sources, SourceFlag); err != nil {
			return nil, fmt.Errorf("loading CLI flags: %w", err)
		}
	}

	settings := flatMapToSettings(k)

	slog.Debug("config resolved",
		"mode", settings.Mode,
		"embedder", settings.Embedder,
		"model", settings.Model,
	)

	return &ResolvedConfig{Settings: settings, Sources: sources}, nil
}

// loadFileLayer loads a TOML settings file, merges its explicitly-set
// fields into k, and records source attribution. A missing file is
// silently skipped.
func loadFileLayer(k *koanf.Koanf, path string, sources SourceMap, src Source) error {
	flat, err := loadTOMLFlat(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if flat == nil {
		return nil
	}
	slog.Debug("loading settings from config", "path", path, "source", src.String())
	return loadLayer(k, flat, sources, src)
}

// loadLayer merges a flat map into k and marks every key in the map as
// originating from src. This correctly attributes source even when a later
// layer provides the same value as a prior layer.
func loadLayer(k *koanf.Koanf, m map[string]any, sources SourceMap, src Source) error {
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return fmt.Errorf("merge layer %s: %w", src.String(), err)
	}
	for key := range m {
		sources[key] = src
	}
	return nil
}

// settingsToFlatMap converts a Settings to a flat map for koanf's confmap
// provider. All fields are included, used for the defaults layer where
// every field has an authoritative default value.
func settingsToFlatMap(s *Settings) map[string]any {
	return map[string]any{
		"mode":             s.Mode,
		"token_budget":     s.TokenBudget,
		"model":            s.Model,
		"tokenizer":        s.Tokenizer,
		"embedder":         s.Embedder,
		"mcp_command":      s.MCPCommand,
		"wasm_model_path":  s.WASMModelPath,
		"cache_dir":        s.CacheDir,
		"max_cache_age_ms": s.MaxCacheAgeMS,
		"log_format":       s.LogFormat,
		"log_level":        s.LogLevel,
	}
}

// flatMapToSettings converts the current koanf state into a Settings
// struct.
func flatMapToSettings(k *koanf.Koanf) *Settings {
	return &Settings{
		Mode:          k.String("mode"),
		TokenBudget:   k.Int("token_budget"),
		Model:         k.String("model"),
		Tokenizer:     k.String("tokenizer"),
		Embedder:      k.String("embedder"),
		MCPCommand:    k.String("mcp_command"),
		WASMModelPath: k.String("wasm_model_path"),
		CacheDir:      k.String("cache_dir"),
		MaxCacheAgeMS: k.Int64("max_cache_age_ms"),
		LogFormat:     k.String("log_format"),
		LogLevel:      k.String("log_level"),
	}
}
