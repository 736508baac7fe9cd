package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix scopes every environment variable the tool reads.
const EnvPrefix = "PLR"

// Settings holds the application configuration. Values come from PLR_*
// environment variables, optionally seeded from a .env file.
type Settings struct {
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`
	HistoryFile string `mapstructure:"HISTORY_FILE"`
	HistoryMax  int    `mapstructure:"HISTORY_MAX"`
	CCTFile     string `mapstructure:"CCT_FILE"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are named. A missing file is not an error; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadSettings reads the settings from the environment and validates them.
func LoadSettings() (*Settings, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("HISTORY_FILE", defaultHistoryFile())
	viper.SetDefault("HISTORY_MAX", 20)
	viper.SetDefault("CCT_FILE", "")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.AutomaticEnv()

	// Bind explicitly so the keys appear in Unmarshal.
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "HISTORY_FILE", "HISTORY_MAX", "CCT_FILE", "HTTP_ADDR"} {
		_ = viper.BindEnv(key)
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the enumerated and numeric settings.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s_LOG_LEVEL must be one of debug, info, warn, error, got %q", EnvPrefix, s.LogLevel)
	}
	switch s.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be json or text, got %q", EnvPrefix, s.LogFormat)
	}
	if s.HistoryMax < 1 {
		return fmt.Errorf("%s_HISTORY_MAX must be at least 1, got %d", EnvPrefix, s.HistoryMax)
	}
	if s.HTTPAddr == "" {
		return fmt.Errorf("%s_HTTP_ADDR must not be empty", EnvPrefix)
	}
	return nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".plrgo", "history.json")
	}
	return filepath.Join(home, ".plrgo", "history.json")
}
