package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "console", s.Format)
	assert.Equal(t, "", s.SensitivityFile)
	assert.False(t, s.Debug)
	assert.Equal(t, 4, s.SweepConcurrency)
	assert.Equal(t, 300, s.WatchDebounceMS)
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv("WHATIF_FORMAT", "JSON")
	t.Setenv("WHATIF_DEBUG", "true")
	t.Setenv("WHATIF_CONCURRENCY", "8")
	t.Setenv("WHATIF_DEBOUNCE_MS", "50")

	s, err := LoadSettings(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "json", s.Format)
	assert.True(t, s.Debug)
	assert.Equal(t, 8, s.SweepConcurrency)
	assert.Equal(t, 50, s.WatchDebounceMS)
}

func TestLoadSettings_FormatAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"md", "markdown"},
		{"text", "console"},
		{"table", "console"},
		{"glamour", "pretty"},
		{"MD", "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			v := NewViper()
			v.Set("format", tt.alias)
			s, err := LoadSettings(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Format)
		})
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	v := NewViper()
	v.Set("format", "xml")
	_, err := LoadSettings(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)

	v = NewViper()
	v.Set("concurrency", 0)
	_, err = LoadSettings(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency must be at least 1")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("WHATIF_SENSITIVITY=tables.yaml\n"), 0o600))

	// Register cleanup for the variable godotenv is about to set
	t.Setenv("WHATIF_SENSITIVITY", "")
	require.NoError(t, os.Unsetenv("WHATIF_SENSITIVITY"))

	require.NoError(t, LoadDotEnv(path))
	s, err := LoadSettings(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "tables.yaml", s.SensitivityFile)
}
