// Package config loads localsearch configuration from files, environment
// variables and Hexo site/theme YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wizenheimer/localsearch"
)

// EnvPrefix prefixes every environment override, e.g. LOCALSEARCH_SEARCH_PATH.
const EnvPrefix = "LOCALSEARCH"

// Config is the full application configuration.
type Config struct {
	// Search is handed to localsearch.NewSession unchanged.
	Search localsearch.Config `mapstructure:"search"`

	// Server configures the HTTP query service.
	Server ServerConfig `mapstructure:"server"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP service settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// BaseURL resolves a relative search.path into a URL to fetch.
	BaseURL string `mapstructure:"base_url"`

	// RateLimit is the sustained number of API requests per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	defaults := localsearch.DefaultConfig()
	v.SetDefault("search.path", defaults.Path)
	v.SetDefault("search.unescape", defaults.Unescape)
	v.SetDefault("search.top_n_per_article", defaults.TopNPerArticle)
	v.SetDefault("search.preload", defaults.Preload)
	v.SetDefault("search.stem", defaults.Stem)
	v.SetDefault("search.origin", defaults.Origin)
	v.SetDefault("search.languages.hits_empty", defaults.Languages.HitsEmpty)
	v.SetDefault("search.languages.hits_stats", defaults.Languages.HitsStats)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("log_level", "info")
}

// Load reads configuration. With an empty path it looks for localsearch.{yaml,json,toml}
// in the working directory and the user config directory, and carries on with
// defaults when none exists. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("localsearch")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "localsearch"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
