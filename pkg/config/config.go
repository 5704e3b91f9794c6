// Package config loads camion configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for camion.
type Config struct {
	// Tool settings for the external analysis tool.
	Tool ToolConfig `koanf:"tool"`

	// Clone settings for remote repositories.
	Clone CloneConfig `koanf:"clone"`

	// Analysis settings.
	Analysis AnalysisConfig `koanf:"analysis"`

	// Cache settings.
	Cache CacheConfig `koanf:"cache"`

	// Output settings.
	Output OutputConfig `koanf:"output"`

	// Server settings for camion serve.
	Server ServerConfig `koanf:"server"`
}

// ToolConfig controls the external analysis tool invocation.
type ToolConfig struct {
	Command        string   `koanf:"command"`
	Args           []string `koanf:"args"`
	TimeoutMinutes int      `koanf:"timeout_minutes"`
}

// CloneConfig controls how remote repositories are fetched.
type CloneConfig struct {
	Depth int `koanf:"depth"`
}

// AnalysisConfig controls the pipeline.
type AnalysisConfig struct {
	Workers int `koanf:"workers"`
}

// CacheConfig controls payload caching.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tool: ToolConfig{
			Command:        "git-truck",
			Args:           []string{"--headless", "--stdout"},
			TimeoutMinutes: 10,
		},
		Clone: CloneConfig{
			Depth: 0,
		},
		Analysis: AnalysisConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".camion/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
		Server: ServerConfig{
			Addr: ":8710",
		},
	}
}

// Load loads configuration from a file, layering it over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard locations and falls back to the defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"camion.toml",
		"camion.yaml",
		"camion.yml",
		"camion.json",
		".camion.toml",
		".camion.yaml",
		".camion.yml",
		".camion.json",
	}

	searchDirs := []string{".", ".camion"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
