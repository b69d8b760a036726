// Package common provides shared configuration, logging, and version
// utilities for the TROCCO MCP server.
package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all trocco-mcp configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Trocco  TroccoConfig  `toml:"trocco"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// TroccoConfig holds TROCCO API settings. The API key is read once at
// startup; a missing key is not an error here — it surfaces as an
// authorization failure on the first request.
type TroccoConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the request timeout duration.
func (c *TroccoConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "TROCCO-MCP",
			Port: "4244",
		},
		Trocco: TroccoConfig{
			BaseURL: "https://trocco.io/api",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/trocco-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from a TOML file with defaults and
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("TROCCO_API_KEY"); key != "" {
		config.Trocco.APIKey = key
	}

	if url := os.Getenv("TROCCO_API_BASE_URL"); url != "" {
		config.Trocco.BaseURL = url
	}

	if port := os.Getenv("TROCCO_MCP_PORT"); port != "" {
		config.Server.Port = port
	}

	if level := os.Getenv("TROCCO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
