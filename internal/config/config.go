package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Host     string
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`

	Database struct {
		URL           string
		MigrationsDir string `mapstructure:"migrations_dir"`
	} `mapstructure:"database"`

	Backend struct {
		BaseURL      string        `mapstructure:"base_url"`
		InventoryURL string        `mapstructure:"inventory_path"`
		SalesURL     string        `mapstructure:"sales_path"`
		SettingsURL  string        `mapstructure:"settings_path"`
		Token        string        `mapstructure:"token"`
		Timeout      time.Duration `mapstructure:"timeout"`
		RateLimitRPS float64       `mapstructure:"rate_limit_rps"`
	} `mapstructure:"backend"`

	JWT struct {
		Secret string
	} `mapstructure:"jwt"`

	Dashboard struct {
		RefreshInterval time.Duration `mapstructure:"refresh_interval"`
		PageSize        int           `mapstructure:"page_size"`
		PendingLimit    int           `mapstructure:"pending_limit"`
	} `mapstructure:"dashboard"`
}

// Load reads .env (system variables win) and maps variables such as
// BACKEND_BASE_URL or DASHBOARD_PAGE_SIZE onto Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", ":8080")
	v.SetDefault("app.log_level", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_dir", "migrations")
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.inventory_path", "/api/inventory")
	v.SetDefault("backend.sales_path", "/api/sales")
	v.SetDefault("backend.settings_path", "/api/settings")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.rate_limit_rps", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("dashboard.refresh_interval", time.Minute)
	v.SetDefault("dashboard.page_size", 10)
	v.SetDefault("dashboard.pending_limit", 50)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL cannot be empty")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must not be negative")
	}
	if c.Backend.RateLimitRPS < 0 {
		return fmt.Errorf("backend rate limit must not be negative")
	}
	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard page size must be positive, got %d", c.Dashboard.PageSize)
	}
	if c.Dashboard.PendingLimit < 1 {
		return fmt.Errorf("pending returns limit must be positive, got %d", c.Dashboard.PendingLimit)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Endpoints resolves the logical gateway endpoints to absolute URLs.
func (c *Config) Endpoints() map[string]string {
	base := strings.TrimRight(c.Backend.BaseURL, "/")
	return map[string]string{
		"inventory": base + c.Backend.InventoryURL,
		"sales":     base + c.Backend.SalesURL,
		"settings":  base + c.Backend.SettingsURL,
	}
}
