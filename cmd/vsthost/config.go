package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/nullrend/vsthost/pkg/settings"
)

// Config is the CLI harness's small operational config: default plugin
// scan roots, default log level, and default backend. This is distinct
// from pkg/settings.Bag, which round-trips the externally-owned JSON
// settings document; this config only governs how the CLI itself
// starts up.
type Config struct {
	LogLevel    string   `mapstructure:"log-level"`
	LogFormat   string   `mapstructure:"log-format"`
	Backend     string   `mapstructure:"backend"`
	ScanRoots   []string `mapstructure:"scan-roots"`
	SettingsBag string   `mapstructure:"settings-bag"`
}

// loadConfig reads ~/.config/vsthost/config.yaml (if present) plus
// VSTHOST_-prefixed environment variables into a Config, applying
// defaults for anything unset.
func loadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("vsthost")
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("backend", "")
	v.SetDefault("scan-roots", settings.DefaultPluginPaths())
	v.SetDefault("settings-bag", defaultSettingsPath())

	if home, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "vsthost"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultSettingsPath() string {
	home, err := os.UserConfigDir()
	if err != nil {
		return "vsthost-settings.json"
	}
	return filepath.Join(home, "vsthost", "settings.json")
}
