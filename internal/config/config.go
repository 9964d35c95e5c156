// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const minSessionSecretLen = 32

// OAuth holds the OpenID Connect client settings. Either all fields are set
// or none are; Enabled reports which.
type OAuth struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether OAuth sign-in is configured.
func (o OAuth) Enabled() bool {
	return o.IssuerURL != ""
}

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SessionSecret keys the session cookie. Required, at least 32 bytes.
	SessionSecret string

	// PreferencesFile is the YAML file holding process-wide preferences.
	PreferencesFile string

	// MediaDir is where uploaded images are stored.
	MediaDir string

	// PublicBaseURL is the externally visible origin, used for image URLs
	// and to decide whether cookies are marked Secure.
	PublicBaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 10 MiB.
	MaxBodyBytes int64

	// MetricsEnabled exposes GET /metrics. Defaults to true.
	MetricsEnabled bool

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxy bool

	OAuth OAuth
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PreferencesFile: getEnv("PREFERENCES_FILE", "preferences.yaml"),
		MediaDir:        getEnv("MEDIA_DIR", "media"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		OAuth: OAuth{
			IssuerURL:    os.Getenv("OAUTH_ISSUER_URL"),
			ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
		},
	}

	var problems []string

	var err error
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "10485760"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		problems = append(problems, "METRICS_ENABLED must be a boolean")
	}
	if cfg.TrustProxy, err = strconv.ParseBool(getEnv("TRUST_PROXY", "false")); err != nil {
		problems = append(problems, "TRUST_PROXY must be a boolean")
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	switch {
	case cfg.SessionSecret == "":
		missing = append(missing, "SESSION_SECRET")
	case len(cfg.SessionSecret) < minSessionSecretLen:
		problems = append(problems, fmt.Sprintf("SESSION_SECRET must be at least %d characters", minSessionSecretLen))
	}

	oauth := map[string]string{
		"OAUTH_ISSUER_URL":    cfg.OAuth.IssuerURL,
		"OAUTH_CLIENT_ID":     cfg.OAuth.ClientID,
		"OAUTH_CLIENT_SECRET": cfg.OAuth.ClientSecret,
		"OAUTH_REDIRECT_URL":  cfg.OAuth.RedirectURL,
	}
	var oauthSet, oauthUnset []string
	for _, key := range []string{"OAUTH_ISSUER_URL", "OAUTH_CLIENT_ID", "OAUTH_CLIENT_SECRET", "OAUTH_REDIRECT_URL"} {
		if oauth[key] != "" {
			oauthSet = append(oauthSet, key)
		} else {
			oauthUnset = append(oauthUnset, key)
		}
	}
	if len(oauthSet) > 0 && len(oauthUnset) > 0 {
		missing = append(missing, oauthUnset...)
	}

	if len(missing) > 0 {
		problems = append([]string{"required environment variables not set: " + strings.Join(missing, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
