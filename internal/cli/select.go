package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/pipeline"
)

var (
	selectAutoInclude []string
	selectJSON        bool
)

var selectCmd = &cobra.Command{
	Use:   "select <prompt>",
	Short: "Select the files most relevant to a prompt within the token budget",
	Long: `select walks the target workspace, scores every surviving file against
the given prompt, and prints the files that fit within the resolved token
budget, in selection order.

Examples:
  smartctx select "add rate limiting to the checkout handler"
  smartctx --dir ./api --mode conservative select "fix the auth bug"
  smartctx select --json "explain the billing flow" > selection.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringSliceVar(&selectAutoInclude, "auto-include", nil, "glob pattern to always include, repeatable")
	selectCmd.Flags().BoolVar(&selectJSON, "json", false, "output the selection result as JSON")
	rootCmd.AddCommand(selectCmd)
}

// selectionOutput is the JSON-serializable shape of a selection result
// (encoding/json needs exported fields, pipeline.SelectionResult already
// has them, so this just documents the CLI's output contract).
type selectionOutput struct {
	Files []pipeline.SelectedFile `json:"files"`
	Debug pipeline.DebugTrace     `json:"debug"`
}

func runSelect(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" {
		return pipeline.NewCLIError("select requires a prompt", fmt.Errorf("no prompt text given"))
	}

	settings := Settings()
	fv := GlobalFlags()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, closer, err := buildEngine(ctx, settings)
	if err != nil {
		return pipeline.NewCLIError("building engine", err)
	}
	defer closer()

	opts := pipeline.SelectOptions{
		AppPath: fv.Dir,
		ChatContext: pipeline.ChatContext{
			SmartContextAutoIncludes: selectAutoInclude,
		},
		Prompt: pipeline.PromptContext{
			UserPrompt: prompt,
		},
		Mode:        pipeline.Mode(settings.Mode),
		TokenBudget: settings.TokenBudget,
		Model:       settings.Model,
	}

	result, err := eng.Select(ctx, opts)
	if err != nil {
		return pipeline.NewCLIError("selecting context", err)
	}

	if selectJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(selectionOutput{Files: result.SelectedFiles, Debug: result.Debug})
	}

	printSelection(cmd, result)
	return nil
}

func printSelection(cmd *cobra.Command, result pipeline.SelectionResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s scoring, %d/%d files selected, %d/%d tokens\n",
		result.Debug.ScoringMethod, result.Debug.SelectedCount, result.Debug.TotalCandidates,
		result.Debug.TokenUsage, result.Debug.TokenBudget)
	for _, f := range result.SelectedFiles {
		marker := " "
		if f.Force {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, f.Path)
	}
}
