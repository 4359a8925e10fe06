package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAnalyze_InvalidWaitPattern(t *testing.T) {
	prev := analyzeWaitFlag
	analyzeWaitFlag = "(unclosed"
	t.Cleanup(func() { analyzeWaitFlag = prev })

	err := runAnalyze(analyzeCmd, []string{"true"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --wait pattern")
}
