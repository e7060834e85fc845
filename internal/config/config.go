// Package config collects process configuration from the environment
// into a single immutable struct built once at startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the taskman API server.
//
// DatabaseURL may contain a literal "<PASSWORD>" placeholder which is
// substituted with DATABASE_PASSWORD at load time, so the credential
// never has to live inside the connection string in the environment file.
type Config struct {
	Port               string
	Env                string
	DatabaseURL        string
	JWTSecret          string
	JWTExpiresIn       time.Duration
	JWTCookieExpiresIn time.Duration
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	EmailFrom          string
}

const (
	defaultPort             = "3000"
	defaultEnv              = "development"
	defaultJWTExpiresIn     = 30 * 24 * time.Hour
	defaultJWTCookieExpires = 30 * 24 * time.Hour
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", defaultPort),
		Env:                getenv("ENV", defaultEnv),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiresIn:       defaultJWTExpiresIn,
		JWTCookieExpiresIn: defaultJWTCookieExpires,
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getenv("SMTP_PORT", "587"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		EmailFrom:          getenv("EMAIL_FROM", "Taskman <noreply@taskman.local>"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.DatabaseURL = strings.Replace(cfg.DatabaseURL, "<PASSWORD>", os.Getenv("DATABASE_PASSWORD"), 1)

	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
		}
		cfg.JWTExpiresIn = d
	}
	if v := os.Getenv("JWT_COOKIE_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_COOKIE_EXPIRES_IN: %w", err)
		}
		cfg.JWTCookieExpiresIn = d
	}

	return cfg, nil
}

// IsDevelopment reports whether verbose request logging should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
