// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"

	// Database
	DatabaseURL string

	// Security
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPM   int

	// Redis (team metrics cache); empty disables caching
	RedisURL        string
	MetricsCacheTTL int // seconds

	// Triage engine tuning
	Engine EngineConfig
}

// EngineConfig are the read-only scoring constants consumed by the
// triage engine. Each request re-reads them from the process config,
// so changes take effect on restart without draining in-flight work.
type EngineConfig struct {
	OverloadThreshold        int     // active cases before a staff member counts as overloaded
	CrimeTypeWeight          float64 // multiplier for CRIME reports
	FacilityTypeWeight       float64 // multiplier for FACILITY reports
	HighPriorityThreshold    int     // priority score requiring immediate attention
	IncludeSupervisorsInPool bool    // count supervisors in the available-staff pool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 120),

		RedisURL:        getEnv("REDIS_URL", ""),
		MetricsCacheTTL: getEnvInt("METRICS_CACHE_TTL", 30),

		Engine: EngineConfig{
			OverloadThreshold:        getEnvInt("OVERLOAD_THRESHOLD", 5),
			CrimeTypeWeight:          getEnvFloat("CRIME_TYPE_WEIGHT", 1.2),
			FacilityTypeWeight:       getEnvFloat("FACILITY_TYPE_WEIGHT", 1.0),
			HighPriorityThreshold:    getEnvInt("HIGH_PRIORITY_THRESHOLD", 60),
			IncludeSupervisorsInPool: getEnvBool("INCLUDE_SUPERVISORS_IN_POOL", false),
		},
	}

	// Validate required fields in production
	if cfg.Environment == "production" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if cfg.Engine.OverloadThreshold < 1 {
		return nil, fmt.Errorf("OVERLOAD_THRESHOLD must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
