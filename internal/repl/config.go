package repl

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the interactive session settings, read from an optional YAML
// file in the user's home directory.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Color       *bool  `yaml:"color"`
}

const configFileName = ".corvid.yaml"

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Prompt:      ">> ",
		HistoryFile: ".corvid_history",
	}
}

// LoadConfig reads the config file from the user's home directory. A missing
// file is not an error; the defaults come back. Fields left out of the file
// keep their default values.
func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return loadConfigFile(filepath.Join(home, configFileName))
}

func loadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultConfig().HistoryFile
	}
	return cfg, nil
}

// historyPath resolves the history file relative to the home directory unless
// the configured path is already absolute.
func (c Config) historyPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
