package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// NotifyConfig controls the notification sink channels.
type NotifyConfig struct {
	ConsoleEnabled bool
	EmailEnabled   bool
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	EmailFrom      string
}

// SeedConfig controls the demo data seeder.
type SeedConfig struct {
	Enabled       bool
	ClearExisting bool
}

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	SweepInterval  time.Duration
	SweepBatchSize int

	Notify NotifyConfig
	Seed   SeedConfig
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/planner?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		SweepInterval:  getEnvDuration("SWEEP_INTERVAL", time.Minute),
		SweepBatchSize: getEnvInt("SWEEP_BATCH_SIZE", 500),

		Notify: NotifyConfig{
			ConsoleEnabled: getEnvBool("NOTIFY_CONSOLE_ENABLED", true),
			EmailEnabled:   getEnvBool("NOTIFY_EMAIL_ENABLED", false),
			SMTPHost:       getEnv("SMTP_HOST", ""),
			SMTPPort:       getEnvInt("SMTP_PORT", 587),
			SMTPUsername:   getEnv("SMTP_USERNAME", ""),
			SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
			EmailFrom:      getEnv("NOTIFY_EMAIL_FROM", "planner@localhost"),
		},
		Seed: SeedConfig{
			Enabled:       getEnvBool("SEED_ENABLED", false),
			ClearExisting: getEnvBool("SEED_CLEAR_EXISTING", false),
		},
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.Notify.EmailEnabled && cfg.Notify.SMTPHost == "" {
		slog.Error("SMTP_HOST must be set when NOTIFY_EMAIL_ENABLED is true")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid bool in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		slog.Warn("invalid int in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}
