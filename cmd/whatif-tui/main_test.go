package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_Defaults(t *testing.T) {
	opts, err := buildOptions("", "")
	require.NoError(t, err)
	assert.NotNil(t, opts.Engine)
	assert.Nil(t, opts.Baseline)
	assert.Len(t, opts.Presets, 4)
}

func TestBuildOptions_Files(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(baseline, []byte("preset: conservative\nbaseline:\n  revenue: 500000\n"), 0o600))

	opts, err := buildOptions("", baseline)
	require.NoError(t, err)
	require.NotNil(t, opts.Baseline)
	assert.True(t, opts.Baseline.Revenue.Equal(decimal.NewFromInt(500000)))

	_, err = buildOptions(filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err)
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())
}
