package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	JWTTTLMinutes int    `mapstructure:"JWT_TTL_MINUTES"`

	// Frontend serving: StaticDir is served with an index.html fallback in
	// production; DevServerURL is the dev server proxied to otherwise.
	StaticDir    string `mapstructure:"STATIC_DIR"`
	DevServerURL string `mapstructure:"DEV_SERVER_URL"`

	// External text-generation service for dashboard insights. The feature is
	// disabled when INSIGHTS_URL is empty.
	InsightsURL    string `mapstructure:"INSIGHTS_URL"`
	InsightsAPIKey string `mapstructure:"INSIGHTS_API_KEY"`
	InsightsModel  string `mapstructure:"INSIGHTS_MODEL"`

	LowStockThreshold int `mapstructure:"LOW_STOCK_THRESHOLD"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("JWT_TTL_MINUTES", 480)
	v.SetDefault("STATIC_DIR", "dist")
	v.SetDefault("DEV_SERVER_URL", "http://localhost:5173")
	v.SetDefault("INSIGHTS_MODEL", "gemini-2.5-flash")
	v.SetDefault("LOW_STOCK_THRESHOLD", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_TTL_MINUTES")
	v.BindEnv("STATIC_DIR")
	v.BindEnv("DEV_SERVER_URL")
	v.BindEnv("INSIGHTS_URL")
	v.BindEnv("INSIGHTS_API_KEY")
	v.BindEnv("INSIGHTS_MODEL")
	v.BindEnv("LOW_STOCK_THRESHOLD")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() && cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
		log.Println("WARNING: JWT_SECRET not set; using an insecure development secret.")
		log.Println("WARNING: Set JWT_SECRET before deploying.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// InsightsEnabled reports whether an external text-generation service is
// configured for the dashboard insights endpoint.
func (c *Config) InsightsEnabled() bool {
	return c.InsightsURL != ""
}

// Validate checks that the configuration is safe to run. Outside development
// a real JWT_SECRET must be provided so signed sessions cannot be forged.
func (c *Config) Validate() error {
	if !c.IsDev() && (c.JWTSecret == "" || c.JWTSecret == "dev-only-secret") {
		return fmt.Errorf("JWT_SECRET must be set when ENV is %q", c.Env)
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive, got %d", c.JWTTTLMinutes)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", c.LowStockThreshold)
	}
	return nil
}
