// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Addr      string
	WebDir    string
	LogLevel  string
	LogFormat string

	DatabaseURL string
	RedisURL    string

	SessionTTL       time.Duration
	WorkspaceIdleTTL time.Duration
	SweepInterval    time.Duration

	OIDC            OIDC
	TrustRemoteUser bool
}

// OIDC holds single sign-on settings. SSO is off unless Issuer is set.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (Config, error) {
	c := Config{
		Addr:        getEnv("ADDR", ":8080"),
		WebDir:      getEnv("WEB_DIR", "web"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		OIDC: OIDC{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}

	var err error
	if v := os.Getenv("TRUST_REMOTE_USER"); v != "" {
		if c.TrustRemoteUser, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("TRUST_REMOTE_USER: %w", err)
		}
	}
	if c.SessionTTL, err = getEnvDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if c.WorkspaceIdleTTL, err = getEnvDuration("WORKSPACE_IDLE_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}
	if c.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	return c, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}
