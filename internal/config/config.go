// Package config loads the engine's on-disk YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a running engine instance.
type Config struct {
	DataDir    string        `yaml:"dataDir"`
	BlockSize  int           `yaml:"blockSize"`
	BufferSize int           `yaml:"bufferSize"`
	LogFile    string        `yaml:"logFile"`
	LogLevel   string        `yaml:"logLevel"`
	Network    NetworkConfig `yaml:"network"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type NetworkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		DataDir:    "data",
		BlockSize:  400,
		BufferSize: 8,
		LogFile:    "quilldb.log",
		LogLevel:   "info",
		Network: NetworkConfig{
			Enabled: true,
			Address: ":9991",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: ":9992",
		},
	}
}

// Load reads and parses a YAML config file, filling in any field the
// file omits from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects a configuration that would crash the engine at
// startup rather than doing so further downstream.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("blockSize must be positive, got %d", c.BlockSize)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("bufferSize must be positive, got %d", c.BufferSize)
	}
	return nil
}
