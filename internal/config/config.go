package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for planhub
type Config struct {
	DataDir string `mapstructure:"data_dir"`
}

// Load reads the config file from ~/.planhub/config.yaml if present
// and applies PLANHUB_* environment overrides. A missing config file
// is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	configDir := filepath.Join(home, ".planhub")

	v.SetDefault("data_dir", configDir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("planhub")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabasePath returns the path to the snapshot database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "planhub.db")
}
