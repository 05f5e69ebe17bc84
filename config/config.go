// Package config assembles runtime configuration from the environment.
//
// Everything operational lives here: listen address, database and Redis
// connection strings, session parameters, and the identities allowed through
// the admin gate. The admin credential is configuration, not a literal in the
// login handler, so deployments can rotate it without a rebuild.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string

	// DatabaseURL is the Postgres DSN.
	DatabaseURL string

	// RedisURL selects the Redis session store when set; empty means the
	// in-memory store.
	RedisURL string

	// SessionTTL bounds how long a login lasts.
	SessionTTL time.Duration

	// AdminID is the stable user id recorded for the configured admin.
	AdminID string
	// AdminUsername and AdminPasswordHash (bcrypt) back the local login.
	AdminUsername     string
	AdminPasswordHash string
	AdminEmail        string

	// TokenIssuer and TokenSecret validate externally issued identity
	// tokens; TokenSubjects is the allow-list of admin subjects.
	TokenIssuer   string
	TokenSecret   string
	TokenSubjects []string
}

const defaultSessionTTL = 24 * time.Hour

// Load reads configuration from the environment. DATABASE_URL and the admin
// credential are required; everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:              getEnv("ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionTTL:        defaultSessionTTL,
		AdminID:           getEnv("ADMIN_ID", "admin"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		TokenIssuer:       os.Getenv("TOKEN_ISSUER"),
		TokenSecret:       os.Getenv("TOKEN_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD_HASH are required")
	}

	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS %q", raw)
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}

	if raw := os.Getenv("TOKEN_SUBJECTS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.TokenSubjects = append(cfg.TokenSubjects, s)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
