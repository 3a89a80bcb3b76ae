// Package cli implements the Cobra command hierarchy for the smartctx CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/config"
)

// FlagValues collects all parsed global flag values from the CLI. This
// struct is populated by BindFlags and passed to the config resolver's
// CLIFlags layer.
type FlagValues struct {
	Dir           string
	Mode          string
	TokenBudget   int
	Model         string
	Tokenizer     string
	Embedder      string
	MCPCommand    string
	WASMModelPath string
	CacheDir      string
	MaxCacheAgeMS int64
	Verbose       bool
	Quiet         bool
	LogFormat     string
}

// BindFlags registers all global persistent flags on cmd and returns a
// FlagValues pointer populated once Cobra has parsed the flags.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Dir, "dir", "d", ".", "workspace directory to select context from")
	pf.StringVarP(&fv.Mode, "mode", "m", "", "selection mode: off, conservative, balanced")
	pf.IntVar(&fv.TokenBudget, "token-budget", 0, "explicit token budget override (0 derives from --model)")
	pf.StringVar(&fv.Model, "model", "", "downstream model identifier used to derive the token budget")
	pf.StringVar(&fv.Tokenizer, "tokenizer", "", "token estimator: cl100k_base, none")
	pf.StringVar(&fv.Embedder, "embedder", "", "embedding backend: mcp, wasm, none")
	pf.StringVar(&fv.MCPCommand, "mcp-command", "", "command line that launches the MCP embedding host")
	pf.StringVar(&fv.WASMModelPath, "wasm-model-path", "", "path to the compiled WASM embedding module")
	pf.StringVar(&fv.CacheDir, "cache-dir", "", "embedding cache directory")
	pf.Int64Var(&fv.MaxCacheAgeMS, "max-cache-age-ms", 0, "embedding cache eviction age in milliseconds")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress all output except errors")
	pf.StringVar(&fv.LogFormat, "log-format", "", "log output format: text, json")

	return fv
}

// ValidateFlags checks fv for obvious mutual-exclusion problems and that
// --dir exists. Value-level validation (mode, embedder, ...) is deferred to
// config.Validate once flags are merged with the rest of the config layers.
func ValidateFlags(fv *FlagValues) error {
	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	info, err := os.Stat(fv.Dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--dir: %s is not a directory", fv.Dir)
	}

	return nil
}

// toCLIFlagMap converts the subset of fv's fields that were explicitly set
// on cmd into a flat map for config.ResolveOptions.CLIFlags. Only changed
// flags are included so unset flags don't shadow lower-precedence layers
// with zero values.
func toCLIFlagMap(cmd *cobra.Command, fv *FlagValues) map[string]any {
	m := make(map[string]any)
	changed := cmd.Flags().Changed

	if changed("mode") {
		m["mode"] = fv.Mode
	}
	if changed("token-budget") {
		m["token_budget"] = fv.TokenBudget
	}
	if changed("model") {
		m["model"] = fv.Model
	}
	if changed("tokenizer") {
		m["tokenizer"] = fv.Tokenizer
	}
	if changed("embedder") {
		m["embedder"] = fv.Embedder
	}
	if changed("mcp-command") {
		m["mcp_command"] = fv.MCPCommand
	}
	if changed("wasm-model-path") {
		m["wasm_model_path"] = fv.WASMModelPath
	}
	if changed("cache-dir") {
		m["cache_dir"] = fv.CacheDir
	}
	if changed("max-cache-age-ms") {
		m["max_cache_age_ms"] = fv.MaxCacheAgeMS
	}
	if changed("log-format") {
		m["log_format"] = fv.LogFormat
	}

	return m
}

// resolveSettings runs the layered config resolver using fv's explicitly-set
// flags as the highest-precedence layer, then validates the result.
func resolveSettings(cmd *cobra.Command, fv *FlagValues) (*config.Settings, error) {
	resolved, err := config.Resolve(config.ResolveOptions{
		TargetDir: fv.Dir,
		CLIFlags:  toCLIFlagMap(cmd, fv),
	})
	if err != nil {
		return nil, fmt.Errorf("resolving configuration: %w", err)
	}

	if errs := config.Validate(resolved.Settings); len(errs) > 0 {
		for _, e := range errs {
			if e.Severity == "error" {
				return nil, e
			}
		}
	}

	return resolved.Settings, nil
}
