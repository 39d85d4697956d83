package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const CONFIG_NAME = ".slidepod"

type Config struct {
	Workers      int      `mapstructure:"workers"`
	Framerate    float64  `mapstructure:"framerate"`
	Extensions   []string `mapstructure:"extensions"`
	MaxDimension int      `mapstructure:"max_dimension"`
	SettingsPath string   `mapstructure:"settings_path"`
	LogPath      string   `mapstructure:"log_path"`
	LogLevel     string   `mapstructure:"log_level"`
	Backend      string   `mapstructure:"backend"`
}

func DefaultConfig() *Config {
	settingsPath := ".slidepod_settings.json"
	if home, err := homedir.Dir(); err == nil {
		settingsPath = filepath.Join(home, settingsPath)
	}

	return &Config{
		Workers:      DEFAULT_WORKERS,
		Framerate:    DEFAULT_FRAMERATE,
		Extensions:   []string{"jpg", "png"},
		MaxDimension: 0,
		SettingsPath: settingsPath,
		LogPath:      DEFAULT_LOG_PATH,
		LogLevel:     "info",
		Backend:      "auto",
	}
}

// setConfigDefaults registers every key so environment overrides and
// Unmarshal see them even without a config file.
func setConfigDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("workers", def.Workers)
	v.SetDefault("framerate", def.Framerate)
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("max_dimension", def.MaxDimension)
	v.SetDefault("settings_path", def.SettingsPath)
	v.SetDefault("log_path", def.LogPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("backend", def.Backend)
}

// LoadConfig reads cfgFile, or $HOME/.slidepod.yaml / ./.slidepod.yaml when
// cfgFile is empty. A missing default config file is not an error.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	setConfigDefaults(v)

	v.SetEnvPrefix("slidepod")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(CONFIG_NAME)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate normalises and checks the loaded values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Framerate <= 0 {
		return fmt.Errorf("framerate must be positive, got %v", c.Framerate)
	}
	c.Framerate = clampFramerate(c.Framerate)
	if c.MaxDimension < 0 {
		return fmt.Errorf("max_dimension must not be negative, got %d", c.MaxDimension)
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	c.Extensions = exts

	switch strings.ToLower(c.Backend) {
	case "auto", "kitty", "none":
		c.Backend = strings.ToLower(c.Backend)
	default:
		return fmt.Errorf("unknown backend %q (want auto, kitty or none)", c.Backend)
	}
	return nil
}
