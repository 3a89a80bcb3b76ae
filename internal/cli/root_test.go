package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/pipeline"
)

func TestRootCommandUse(t *testing.T) {
	assert.Equal(t, "smartctx", rootCmd.Use)
}

func TestRootCommandSilenceFlags(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCommandHasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "root command must have --verbose persistent flag")
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCommandHasQuietFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, flag, "root command must have --quiet persistent flag")
	assert.Equal(t, "q", flag.Shorthand)
}

func TestRootCommandHasDirFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, flag, "root command must have --dir persistent flag")
	assert.Equal(t, "d", flag.Shorthand)
	assert.Equal(t, ".", flag.DefValue)
}

func TestRootCommandHasModeFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("mode")
	require.NotNil(t, flag, "root command must have --mode persistent flag")
	assert.Equal(t, "m", flag.Shorthand)
}

func TestRootCommandHasEmbedderFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("embedder")
	require.NotNil(t, flag, "root command must have --embedder persistent flag")
}

func TestExecuteWithHelp(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitSuccess), code)
	assert.Contains(t, buf.String(), "token budget")
}

func TestExecuteWithUnknownFlag(t *testing.T) {
	rootCmd.SetArgs([]string{"--nonexistent-flag"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetErr(buf)
	defer rootCmd.SetErr(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitError), code)
}

func TestRootCmdReturnsCommand(t *testing.T) {
	cmd := RootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "smartctx", cmd.Use)
}

func TestExtractExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want pipeline.ExitCode
	}{
		{"nil error returns ExitSuccess", nil, pipeline.ExitSuccess},
		{"generic error returns ExitError", errors.New("boom"), pipeline.ExitError},
		{"CLIError preserves its code", pipeline.NewCLIError("fatal", errors.New("cause")), pipeline.ExitError},
		{"wrapped CLIError preserves its code", fmt.Errorf("outer: %w", pipeline.NewCLIError("fatal", nil)), pipeline.ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
