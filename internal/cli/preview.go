package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/pipeline"
	"github.com/ternary/smartcontext/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview <prompt>",
	Short: "Interactively browse the top scored candidates for a prompt",
	Long: `preview runs the same selection as "select" and opens an interactive,
filterable list of the top scored candidates with a detail pane showing
each one's full contribution trail.

Example:
  smartctx preview "add rate limiting to the checkout handler"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" {
		return pipeline.NewCLIError("preview requires a prompt", fmt.Errorf("no prompt text given"))
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

	if err := tui.Run(result); err != nil {
		return pipeline.NewCLIError("running preview", err)
	}
	return nil
}
