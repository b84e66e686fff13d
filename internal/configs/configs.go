/*
Package configs is responsible for loading and parsing the application's configuration.

It configures server parameters from operating system environment variables:
the running environment, port, CORS allowed origins, the credential secret,
and the initial values of the runtime-tunable hub settings.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig contains all configuration parameters required to run the hub.
// All values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string
	AdminPassword  string

	// Initial hub settings; tunable at runtime through `set settings`.
	MessagesPerInterval    int
	MessagesIntervalLength time.Duration
	MaxMessageLength       int
}

// LoadConfig reads and parses the application configuration from
// environment variables, applying defaults and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if cfg.Environment == "development" {
		if jwtSecret == "" {
			jwtSecret = "your_default_insecure_secret_key_change_me"
		}
	} else {
		if jwtSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.JWTSecret = jwtSecret

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if cfg.Environment == "development" {
		if adminPassword == "" {
			adminPassword = "admin_dev_password_change_me"
		}
	} else {
		if adminPassword == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.AdminPassword = adminPassword

	// --- Initial Hub Settings ---
	cfg.MessagesPerInterval, err = intEnv("MESSAGES_PER_INTERVAL", 5)
	if err != nil {
		return nil, err
	}

	intervalMS, err := intEnv("MESSAGES_INTERVAL_LENGTH_MS", 10000)
	if err != nil {
		return nil, err
	}
	cfg.MessagesIntervalLength = time.Duration(intervalMS) * time.Millisecond

	cfg.MaxMessageLength, err = intEnv("MAX_MESSAGE_LENGTH", 256)
	if err != nil {
		return nil, err
	}

	if cfg.MessagesPerInterval < 1 || cfg.MessagesIntervalLength <= 0 || cfg.MaxMessageLength < 2 {
		return nil, fmt.Errorf("hub settings out of range: per_interval=%d interval=%s max_length=%d",
			cfg.MessagesPerInterval, cfg.MessagesIntervalLength, cfg.MaxMessageLength)
	}

	return cfg, nil
}

// intEnv parses an integer environment variable with a fallback default.
func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}

	return n, nil
}
