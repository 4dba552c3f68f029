package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	// JWTSecret signs bearer tokens for /api/v1; empty disables authentication.
	JWTSecret string
	JWTIssuer string

	ReportCacheTTL  time.Duration
	ReportCacheSize int

	// RateLimit uses the ulule/limiter format, e.g. "60-M".
	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	MigrationsPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REPORT_CACHE_TTL", "10m")
	viper.SetDefault("REPORT_CACHE_SIZE", 256)
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	// Values from .env are already in the environment and can be overridden by it.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Report endpoints are served without authentication.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	// Load report cache TTL (e.g., "10m", "1h")
	ttlStr := viper.GetString("REPORT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
		log.Printf("Warning: Invalid value for REPORT_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.ReportCacheTTL = ttl

	cfg.ReportCacheSize = viper.GetInt("REPORT_CACHE_SIZE")
	if cfg.ReportCacheSize <= 0 {
		cfg.ReportCacheSize = 256
		log.Printf("Warning: REPORT_CACHE_SIZE must be positive. Defaulting to %d.\n", cfg.ReportCacheSize)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
