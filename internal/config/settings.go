package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rgehrsitz/whatif/internal/output"
)

// Settings are the CLI's ambient options. Flags win over WHATIF_* environment
// variables, which win over a .env file, which wins over defaults.
type Settings struct {
	Format           string
	SensitivityFile  string
	Debug            bool
	SweepConcurrency int
	WatchDebounceMS  int
}

// NewViper returns a viper instance with the WHATIF_ environment prefix and defaults
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("WHATIF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("format", "console")
	v.SetDefault("sensitivity", "")
	v.SetDefault("debug", false)
	v.SetDefault("concurrency", 4)
	v.SetDefault("debounce-ms", 300)

	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads a .env style file into the process environment if it exists.
// Variables already set are not overridden.
func LoadDotEnv(filename string) error {
	if filename == "" {
		filename = ".env"
	}
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// LoadSettings reads settings from a configured viper instance and validates them
func LoadSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Format:           strings.ToLower(v.GetString("format")),
		SensitivityFile:  v.GetString("sensitivity"),
		Debug:            v.GetBool("debug"),
		SweepConcurrency: v.GetInt("concurrency"),
		WatchDebounceMS:  v.GetInt("debounce-ms"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings values. A format alias is replaced by the formatter name
// it resolves to.
func (s *Settings) Validate() error {
	f := output.GetFormatterByName(s.Format)
	if f == nil {
		return fmt.Errorf("unsupported format %q (valid: %s; aliases: %s)", s.Format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	s.Format = f.Name()
	if s.SweepConcurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.SweepConcurrency)
	}
	if s.WatchDebounceMS < 0 {
		return fmt.Errorf("debounce-ms cannot be negative, got %d", s.WatchDebounceMS)
	}
	return nil
}
