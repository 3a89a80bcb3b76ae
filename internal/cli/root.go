package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/config"
	"github.com/ternary/smartcontext/internal/pipeline"
)

// flagValues holds the parsed global flag values, populated by BindFlags
// during command initialization and validated in PersistentPreRunE.
var flagValues *FlagValues

// resolvedSettings holds the layered configuration resolved during
// PersistentPreRunE, once global flags have been validated. Subcommands
// read it via Settings().
var resolvedSettings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "smartctx",
	Short: "Select the files an LLM prompt actually needs.",
	Long: `smartctx picks the subset of a workspace's files most relevant to a
given prompt, within a token budget, for assembly into a downstream LLM
prompt. It walks the workspace, filters ignored/binary/oversized files,
scores candidates by embedding similarity or TF-IDF, applies heuristic and
keyword adjustments, and selects files greedily until the budget runs out.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(flagValues); err != nil {
			return err
		}

		level := config.ParseLogLevel("info")
		if flagValues.Verbose {
			level = config.ParseLogLevel("debug")
		}
		if flagValues.Quiet {
			level = config.ParseLogLevel("error")
		}
		format := flagValues.LogFormat
		if format == "" {
			format = "text"
		}
		config.SetupLogging(level, format)

		settings, err := resolveSettings(cmd, flagValues)
		if err != nil {
			return err
		}
		resolvedSettings = settings

		if !flagValues.Verbose && !flagValues.Quiet {
			level = config.ParseLogLevel(settings.LogLevel)
		}
		config.SetupLogging(level, settings.LogFormat)

		slog.Debug("configuration resolved", "mode", settings.Mode, "embedder", settings.Embedder)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd, args)
	},
}

func init() {
	flagValues = BindFlags(rootCmd)
	rootCmd.RegisterFlagCompletionFunc("mode", completeMode)
	rootCmd.RegisterFlagCompletionFunc("embedder", completeEmbedder)
}

func completeMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"off", "conservative", "balanced"}, cobra.ShellCompDirectiveNoFileComp
}

func completeEmbedder(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"mcp", "wasm", "none"}, cobra.ShellCompDirectiveNoFileComp
}

// Execute runs the root command and returns an appropriate process exit
// code. If the error is a *pipeline.CLIError, its Code is used.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return int(extractExitCode(err))
	}
	return int(pipeline.ExitSuccess)
}

func extractExitCode(err error) pipeline.ExitCode {
	if err == nil {
		return pipeline.ExitSuccess
	}
	var cliErr *pipeline.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return pipeline.ExitError
}

// RootCmd returns the root cobra.Command, for subcommand registration and
// testing.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. Available only after
// PersistentPreRunE has run.
func GlobalFlags() *FlagValues {
	return flagValues
}

// Settings returns the layered configuration resolved during
// PersistentPreRunE. Available only after PersistentPreRunE has run.
func Settings() *config.Settings {
	return resolvedSettings
}
