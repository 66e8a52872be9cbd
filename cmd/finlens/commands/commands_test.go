package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "analyze", "statements", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "finlens dev\n", out.String())
}

func TestAnalyzeCommand_RequiresSymbol(t *testing.T) {
	assert.Error(t, analyzeCmd.Args(analyzeCmd, nil))
	assert.NoError(t, analyzeCmd.Args(analyzeCmd, []string{"TCS.NS", "INFY.NS"}))
	assert.Error(t, statementsCmd.Args(statementsCmd, []string{"TCS.NS", "INFY.NS"}))
}

func TestPrintHelpers(t *testing.T) {
	var out bytes.Buffer
	PrintKeyValue(&out, "sales", "100%", 8)
	PrintError(&out, "boom")

	assert.Equal(t, "   sales    : 100%\n❌ boom\n", out.String())
}
