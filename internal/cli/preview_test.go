package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/pipeline"
)

func TestPreviewCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "preview <prompt>" {
			found = true
		}
	}
	assert.True(t, found, "preview subcommand must be registered on root command")
}

func TestRunPreviewRejectsEmptyPrompt(t *testing.T) {
	err := runPreview(&cobra.Command{}, []string{""})
	require.Error(t, err)
	var cliErr *pipeline.CLIError
	require.ErrorAs(t, err, &cliErr)
}
