package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/pipeline"
)

var explainCmd = &cobra.Command{
	Use:   "explain <prompt> <path>",
	Short: "Explain why a single file was, or wasn't, selected for a prompt",
	Long: `explain runs the same selection as "select" and then reports what is known
about one candidate: whether it was force-included, whether it made the
final selection, and its score and contribution trail when it is among
the first selected files traced in the debug output.

Example:
  smartctx explain "fix the auth bug" internal/auth/login.go`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	path := args[len(args)-1]
	prompt := strings.Join(args[:len(args)-1], " ")
	if strings.TrimSpace(prompt) == "" {
		return pipeline.NewCLIError("explain requires a prompt", fmt.Errorf("no prompt text given"))
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

	result, err := eng.Select(ctx, pipeline.SelectOptions{
		AppPath:     fv.Dir,
		Prompt:      pipeline.PromptContext{UserPrompt: prompt},
		Mode:        pipeline.Mode(settings.Mode),
		TokenBudget: settings.TokenBudget,
		Model:       settings.Model,
	})
	if err != nil {
		return pipeline.NewCLIError("selecting context", err)
	}

	out := cmd.OutOrStdout()

	var selected *pipeline.SelectedFile
	for i := range result.SelectedFiles {
		if result.SelectedFiles[i].Path == path {
			selected = &result.SelectedFiles[i]
			break
		}
	}

	var traced *pipeline.TopScore
	for i := range result.Debug.TopScores {
		if result.Debug.TopScores[i].Path == path {
			traced = &result.Debug.TopScores[i]
			break
		}
	}

	switch {
	case selected != nil && selected.Force:
		fmt.Fprintf(out, "%s: force-included, bypassing scoring\n", path)
	case selected != nil:
		fmt.Fprintf(out, "%s: selected\n", path)
	default:
		fmt.Fprintf(out, "%s: not selected (%d files, %d/%d tokens used)\n", path,
			result.Debug.SelectedCount, result.Debug.TokenUsage, result.Debug.TokenBudget)
	}

	if traced != nil {
		fmt.Fprintf(out, "score: %.3f\n", traced.Score)
		fmt.Fprintf(out, "reasons: %s\n", traced.Reasons)
	} else {
		fmt.Fprintf(out, "no score trail available (only the first %d selected files are traced)\n", len(result.Debug.TopScores))
	}

	return nil
}
