package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Root                string `yaml:"root"`                  // default scan root
	Editor              string `yaml:"editor"`                // command used to open a project
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"` // per git subcommand
	Workers             int    `yaml:"workers"`               // concurrent listing cap
	LogLevel            string `yaml:"log_level"`
	Theme               string `yaml:"theme"`
}

func DefaultConfig() Config {
	return Config{
		Editor:              "code",
		ProbeTimeoutSeconds: 5,
		Workers:             4,
		LogLevel:            "info",
		Theme:               "mocha",
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir loads config.yaml from an explicit directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.ProbeTimeoutSeconds <= 0 {
		cfg.ProbeTimeoutSeconds = 5
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return cfg, nil
}

// ProbeTimeout returns the per-subcommand git timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// DataDir returns the directory for runtime state (log file, lock file).
func DataDir() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "gitdash")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", "gitdash")
	}

	return filepath.Join(home, ".local", "state", "gitdash")
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gitdash", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitdash", "config.yaml")
	}

	return filepath.Join(home, ".config", "gitdash", "config.yaml")
}
