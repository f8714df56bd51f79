// Package config loads the optional settings file of the mica command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the variable that overrides the settings file location.
const EnvVar = "MICA_CONFIG"

// Config holds REPL settings. Fields absent from the file keep their
// defaults.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	// HistoryFile is where line history is kept; empty disables history.
	HistoryFile    string `yaml:"history_file"`
	PrintUndefined bool   `yaml:"print_undefined"`
	Completion     bool   `yaml:"completion"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:             "mica> ",
		ContinuationPrompt: "....  ",
		HistoryFile:        "~/.mica_history",
		Completion:         true,
	}
}

// Path returns the settings file location: $MICA_CONFIG when set,
// otherwise ~/.mica.yml.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvVar)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user home: %w", err)
	}
	return filepath.Join(home, ".mica.yml"), nil
}

// Load reads settings from path. A missing or empty file yields the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.expanded(), nil
		}
		return Default().expanded(), fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default().expanded(), nil
		}
		return Default().expanded(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.expanded(), nil
}

// LoadDefault loads settings from Path. On error the defaults are returned
// together with the error.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default().expanded(), err
	}
	return Load(path)
}

func (c Config) expanded() Config {
	c.HistoryFile = expandHome(c.HistoryFile)
	return c
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
