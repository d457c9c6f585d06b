// Package config loads craftpkg settings from defaults, an optional
// .craftpkg.yaml file, and CRAFTPKG_* environment variables, in that order of
// precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for craftpkg
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Plugins  PluginsConfig  `mapstructure:"plugins"`
	Search   SearchConfig   `mapstructure:"search"`
}

// RegistryConfig holds registry client settings
type RegistryConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// PluginsConfig holds local artifact settings
type PluginsConfig struct {
	Dir     string   `mapstructure:"dir"`
	Loaders []string `mapstructure:"loaders"`
}

// SearchConfig holds search settings
type SearchConfig struct {
	Limit int `mapstructure:"limit"`
}

// FileName is the per-directory config file craftpkg looks for.
const FileName = ".craftpkg.yaml"

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"registry.base_url":    "https://api.modrinth.com/v2",
		"registry.timeout":     "30s",
		"registry.concurrency": 4,
		"plugins.dir":          "plugins",
		"plugins.loaders":      []string{"spigot", "paper", "purpur", "bukkit"},
		"search.limit":         10,
	}
}

// Load reads configuration for the current working directory. A missing
// config file is fine; defaults and environment apply either way.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(FileName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
	}

	v.SetEnvPrefix("CRAFTPKG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("registry.base_url must not be empty")
	}
	if c.Plugins.Dir == "" {
		return fmt.Errorf("plugins.dir must not be empty")
	}
	if len(c.Plugins.Loaders) == 0 {
		return fmt.Errorf("plugins.loaders must name at least one loader")
	}
	if c.Registry.Concurrency < 1 {
		c.Registry.Concurrency = 1
	}
	if c.Search.Limit < 1 {
		c.Search.Limit = 10
	}
	return nil
}

// WriteDefault writes a starter config file at path. Refuses to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	// Durations serialize as strings so the file stays hand-editable.
	scaffold := struct {
		Registry struct {
			BaseURL     string `yaml:"base_url"`
			Timeout     string `yaml:"timeout"`
			Concurrency int    `yaml:"concurrency"`
		} `yaml:"registry"`
		Plugins struct {
			Dir     string   `yaml:"dir"`
			Loaders []string `yaml:"loaders"`
		} `yaml:"plugins"`
		Search struct {
			Limit int `yaml:"limit"`
		} `yaml:"search"`
	}{}
	scaffold.Registry.BaseURL = "https://api.modrinth.com/v2"
	scaffold.Registry.Timeout = "30s"
	scaffold.Registry.Concurrency = 4
	scaffold.Plugins.Dir = "plugins"
	scaffold.Plugins.Loaders = []string{"spigot", "paper", "purpur", "bukkit"}
	scaffold.Search.Limit = 10

	data, err := yaml.Marshal(&scaffold)
	if err != nil {
		return fmt.Errorf("failed to encode default configuration: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
