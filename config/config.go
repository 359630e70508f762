package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the fasttextm tool.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Download DownloadConfig `yaml:"download"`
	Search   SearchConfig   `yaml:"search"`
}

// DataConfig locates the on-disk model installations.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// DownloadConfig holds the remote model distribution settings.
type DownloadConfig struct {
	// URLTemplate must contain one %s placeholder for the language code.
	URLTemplate string `yaml:"url_template"`
}

// SearchConfig holds nearest-neighbor search defaults.
type SearchConfig struct {
	DefaultK int `yaml:"default_k"`
}

// DefaultConfig returns the default configuration. The data directory
// defaults to ~/.fasttextm, falling back to a relative directory when the
// home directory cannot be determined.
func DefaultConfig() *Config {
	dataDir := ".fasttextm"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".fasttextm")
	}
	return &Config{
		Data: DataConfig{
			Dir: dataDir,
		},
		Download: DownloadConfig{
			URLTemplate: "https://dl.fbaipublicfiles.com/fasttext/vectors-aligned/wiki.%s.align.vec",
		},
		Search: SearchConfig{
			DefaultK: 10,
		},
	}
}

// Load loads configuration from a YAML file, returning defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// fasttextm.yaml, then .fasttextm/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "fasttextm.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".fasttextm", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
