package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	APIScheme        string        `mapstructure:"api_scheme"`
	APIHost          string        `mapstructure:"api_host"`
	APIPort          int           `mapstructure:"api_port"`
	APIBaseURL       string        `mapstructure:"api_base_url"`
	RequestTimeoutMs int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout   time.Duration `mapstructure:"-"`

	StorageType          string `mapstructure:"storage_type"`
	BBoltPath            string `mapstructure:"bbolt_path"`
	CredentialCookie     string `mapstructure:"credential_cookie"`
	CredentialCookieDays int    `mapstructure:"credential_cookie_days"`

	ToastVariant    string        `mapstructure:"toast_variant"`
	ToastDurationMs int64         `mapstructure:"toast_duration_ms"`
	ToastLeaveMs    int64         `mapstructure:"toast_leave_ms"`
	ToastDuration   time.Duration `mapstructure:"-"`
	ToastLeave      time.Duration `mapstructure:"-"`

	ReportersFile string `mapstructure:"reporters_file"`

	DashboardRefreshSeconds int64         `mapstructure:"dashboard_refresh_seconds"`
	DashboardRefresh        time.Duration `mapstructure:"-"`
	TrendDays               int           `mapstructure:"trend_days"`
	PrefsPath               string        `mapstructure:"prefs_path"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "easy-qfnu-portal")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("api_scheme", "http")
	v.SetDefault("api_host", "127.0.0.1")
	v.SetDefault("api_port", 8080)
	v.SetDefault("api_base_url", "")
	v.SetDefault("request_timeout_ms", 30000)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/portal.db")
	v.SetDefault("credential_cookie", "auth_cookie")
	v.SetDefault("credential_cookie_days", 7)
	v.SetDefault("toast_variant", "card")
	v.SetDefault("toast_duration_ms", 2500)
	v.SetDefault("toast_leave_ms", 200)
	v.SetDefault("reporters_file", "")
	v.SetDefault("dashboard_refresh_seconds", 30)
	v.SetDefault("trend_days", 7)
	v.SetDefault("prefs_path", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	if c.RequestTimeoutMs <= 0 {
		return fmt.Errorf("invalid request_timeout_ms (must be positive milliseconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutMs) * time.Millisecond

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid api_port %d", c.APIPort)
	}
	if c.CredentialCookieDays <= 0 {
		return fmt.Errorf("invalid credential_cookie_days (must be positive days)")
	}
	if strings.TrimSpace(c.CredentialCookie) == "" {
		return fmt.Errorf("credential_cookie must not be empty")
	}

	if c.ToastDurationMs <= 0 {
		return fmt.Errorf("invalid toast_duration_ms (must be positive milliseconds)")
	}
	if c.ToastLeaveMs < 0 {
		return fmt.Errorf("invalid toast_leave_ms (must not be negative)")
	}
	c.ToastDuration = time.Duration(c.ToastDurationMs) * time.Millisecond
	c.ToastLeave = time.Duration(c.ToastLeaveMs) * time.Millisecond

	if c.DashboardRefreshSeconds <= 0 {
		return fmt.Errorf("invalid dashboard_refresh_seconds (must be positive seconds)")
	}
	c.DashboardRefresh = time.Duration(c.DashboardRefreshSeconds) * time.Second
	if c.TrendDays <= 0 {
		c.TrendDays = 7
	}
	return nil
}

// BaseURL returns the portal API address. An explicit api_base_url wins; otherwise
// the address is the configured host on the fixed service port.
func (c *Config) BaseURL() string {
	if base := strings.TrimSpace(c.APIBaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	scheme := strings.TrimSpace(c.APIScheme)
	if scheme == "" {
		scheme = "http"
	}
	host := strings.TrimSpace(c.APIHost)
	if host == "" {
		host = "127.0.0.1"
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(c.APIPort))
}
