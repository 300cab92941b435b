package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

const defaultPath = "config.yaml"

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	APIBaseURL string `yaml:"api_base_url"`

	// DefaultUser is the user id CLI commands act on when --user is not given.
	DefaultUser string `yaml:"default_user"`

	// DefaultTimezone is used for profiles that carry no timezone of
	// their own. Empty means the host timezone.
	DefaultTimezone string `yaml:"default_timezone"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads the yaml config file, location overridable via
// CLEARDAY_CONFIG. A missing default file is not an error; an explicitly
// configured path that does not exist is.
func Load() (*Config, error) {
	path := os.Getenv("CLEARDAY_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		ListenAddr:  ":8080",
		DBPath:      "clearday.db",
		APIBaseURL:  "http://localhost:8080",
		DefaultUser: "default",
		LogLevel:    "info",
		LogFormat:   "text",
	}
	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	setenv(&cfg.ListenAddr, "CLEARDAY_LISTEN_ADDR")
	setenv(&cfg.DBPath, "CLEARDAY_DB_PATH")
	setenv(&cfg.APIBaseURL, "CLEARDAY_API_BASE")
	setenv(&cfg.DefaultUser, "CLEARDAY_USER")
	setenv(&cfg.DefaultTimezone, "CLEARDAY_TIMEZONE")
	setenv(&cfg.LogLevel, "CLEARDAY_LOG_LEVEL")
	setenv(&cfg.LogFormat, "CLEARDAY_LOG_FORMAT")
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
