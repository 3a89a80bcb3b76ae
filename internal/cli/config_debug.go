package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/config"
)

// configCmd is the parent command for configuration-related subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with per-field source annotations",
	Long: `Displays the fully resolved configuration and, for each field, which
layer provided its value: built-in default, global config, repo config,
environment variable, or CLI flag. Useful for diagnosing unexpected
configuration behavior.`,
	RunE: runConfigDebug,
}

func init() {
	configDebugCmd.Flags().Bool("json", false, "output as structured JSON")
	configCmd.AddCommand(configDebugCmd)
	rootCmd.AddCommand(configCmd)
}

type configDebugField struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func runConfigDebug(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	resolved, err := config.Resolve(config.ResolveOptions{
		TargetDir: fv.Dir,
		CLIFlags:  toCLIFlagMap(rootCmd, fv),
	})
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}

	fields := configDebugFields(resolved)

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}

	for _, f := range fields {
		fmt.Fprintf(out, "%-16s %-30s (%s)\n", f.Field, f.Value, f.Source)
	}
	return nil
}

// configDebugFields flattens a ResolvedConfig into a sorted, printable list
// of field/value/source rows.
func configDebugFields(resolved *config.ResolvedConfig) []configDebugField {
	s := resolved.Settings
	values := map[string]string{
		"mode":             s.Mode,
		"token_budget":     fmt.Sprintf("%d", s.TokenBudget),
		"model":            s.Model,
		"tokenizer":        s.Tokenizer,
		"embedder":         s.Embedder,
		"mcp_command":      s.MCPCommand,
		"wasm_model_path":  s.WASMModelPath,
		"cache_dir":        s.CacheDir,
		"max_cache_age_ms": fmt.Sprintf("%d", s.MaxCacheAgeMS),
		"log_format":       s.LogFormat,
		"log_level":        s.LogLevel,
	}

	fields := make([]configDebugField, 0, len(values))
	for field, value := range values {
		fields = append(fields, configDebugField{
			Field:  field,
			Value:  value,
			Source: resolved.Sources[field].String(),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}
