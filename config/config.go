package config

import (
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	StatePath string // Path to the escrow state file
	Identity  string // Default caller account for lifecycle commands
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".swap-escrow")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("state_path", "")

	// Read from environment variables
	viper.SetEnvPrefix("SWAP_ESCROW")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		StatePath: viper.GetString("state_path"),
		Identity:  viper.GetString("identity"),
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, _ := Load()
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
