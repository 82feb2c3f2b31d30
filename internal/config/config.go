// Package config loads application configuration with viper. A missing
// config file is fine; every key has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Data    DataConfig    `mapstructure:"data"`
	History HistoryConfig `mapstructure:"history"`
}

type UIConfig struct {
	Theme         string `mapstructure:"theme"`
	MouseEnabled  bool   `mapstructure:"mouse_enabled"`
	DoubleClickMs int    `mapstructure:"double_click_ms"`
}

type DataConfig struct {
	PageSize     int `mapstructure:"page_size"`
	MaxCellWidth int `mapstructure:"max_cell_width"`
}

type HistoryConfig struct {
	MaxEntries int  `mapstructure:"max_entries"`
	Persist    bool `mapstructure:"persist"`
}

// GetDefaults returns a Config with all default values.
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:         "default",
			MouseEnabled:  true,
			DoubleClickMs: 400,
		},
		Data: DataConfig{
			PageSize:     10,
			MaxCellWidth: 30,
		},
		History: HistoryConfig{
			MaxEntries: 50,
			Persist:    true,
		},
	}
}

// Load reads config.yaml from the user config directory or the working
// directory, falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "dbrowse"))
	}
	v.AddConfigPath(".")

	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.double_click_ms", 400)
	v.SetDefault("data.page_size", 10)
	v.SetDefault("data.max_cell_width", 30)
	v.SetDefault("history.max_entries", 50)
	v.SetDefault("history.persist", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Dir returns the dbrowse config directory, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "dbrowse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
