// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir     string `yaml:"data_dir"`
	Collections struct {
		Cards    string `yaml:"cards"`
		Settings string `yaml:"settings"`
		Stats    string `yaml:"stats"`
	} `yaml:"collections"`
	CheckUpdates bool `yaml:"check_updates"`
}

func Default() *Config {
	cfg := &Config{
		DataDir:      ".",
		CheckUpdates: false,
	}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.Collections.Cards == "" {
		c.Collections.Cards = "flashcards.json"
	}
	if c.Collections.Settings == "" {
		c.Collections.Settings = "settings.json"
	}
	if c.Collections.Stats == "" {
		c.Collections.Stats = "study_stats.json"
	}
}

func (c *Config) CardsPath() string    { return filepath.Join(c.DataDir, c.Collections.Cards) }
func (c *Config) SettingsPath() string { return filepath.Join(c.DataDir, c.Collections.Settings) }
func (c *Config) StatsPath() string    { return filepath.Join(c.DataDir, c.Collections.Stats) }
