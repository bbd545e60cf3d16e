// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/demosnet/demoscore/internal/fsutil"
)

// Config holds demoskey configuration settings
type Config struct {
	DefaultInstance string `yaml:"default_instance" description:"Identity instance used when none is named" default:"default"`
	GasAmount       uint64 `yaml:"gas_amount" description:"Flat gas charged per transaction, in DEM" default:"1"`
	RSABits         int    `yaml:"rsa_bits" description:"Modulus size for deterministic RSA identities" default:"2048"`
	LogLevel        string `yaml:"log_level" description:"Log level (debug, info, warn, error)" default:"info"`
	VerifyCacheSize int    `yaml:"verify_cache_size" description:"Entries in the signature verification cache (0 disables)" default:"1024"`
}

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	return Config{
		DefaultInstance: "default",
		GasAmount:       1,
		RSABits:         2048,
		LogLevel:        "info",
		VerifyCacheSize: 1024,
	}
}

// GetDataDir returns the data directory.
// Resolution order: -d flag > DEMOS_DATA env var > ~/.demos
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv("DEMOS_DATA"); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".demos")
}

// GetConfigPath returns the path to the config file in the data directory.
// Returns empty string if dataDir is empty.
func GetConfigPath(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig loads configuration from config.yaml in the data directory.
// If dataDir is empty or the file doesn't exist, returns default config.
func LoadConfig(dataDir string) (Config, error) {
	return LoadConfigFromPath(GetConfigPath(dataDir))
}

// LoadConfigFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadConfigFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay config file values
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks value ranges and fills in empty fields with defaults.
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.DefaultInstance) == "" {
		c.DefaultInstance = defaults.DefaultInstance
	}
	if c.RSABits == 0 {
		c.RSABits = defaults.RSABits
	}
	if c.RSABits < 1024 || c.RSABits%256 != 0 {
		return fmt.Errorf("invalid rsa_bits %d (must be a multiple of 256, at least 1024)", c.RSABits)
	}
	if c.VerifyCacheSize < 0 {
		return fmt.Errorf("invalid verify_cache_size %d (must be >= 0)", c.VerifyCacheSize)
	}
	return nil
}

// SaveConfig writes the configuration to config.yaml in the data directory.
func SaveConfig(dataDir string, config Config) error {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fsutil.MkdirAll(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return fsutil.WriteFile(GetConfigPath(dataDir), data)
}
