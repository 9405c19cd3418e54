package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
// The bearer token is deliberately not validated: the upstream rejects
// unauthenticated calls with 401, which surfaces as a request error.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	AuthToken             string        `mapstructure:"authorisation_token"`
	BaseURL               string        `mapstructure:"quiver_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	SettingsFile string `mapstructure:"settings_file"`
}

// Load reads configuration from environment variables and config files.
// The bearer token comes from AUTHORISATION_TOKEN (upstream spelling).
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "quiver-feed")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("authorisation_token", "")
	v.SetDefault("quiver_base_url", "https://api.quiverquant.com/beta")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("settings_file", "./configs/settings.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("quiver_base_url must not be empty")
	}

	return &cfg, nil
}
