package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Auth   AuthConfig
	Server ServerConfig
}

// AuthConfig contains token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	GinMode        string
}

const (
	defaultTokenTTLMinutes = 30
	defaultPort            = "8080"
	defaultAllowedOrigin   = "http://127.0.0.1:8080"
)

// Load reads configuration from environment variables. A missing
// JWT_SECRET_KEY is an error; callers are expected to abort startup.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	ttlMinutes := defaultTokenTTLMinutes
	if raw := os.Getenv("JWT_EXPIRATION_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES %q: must be a positive integer", raw)
		}
		ttlMinutes = n
	}

	return &Config{
		Auth: AuthConfig{
			JWTSecret: secret,
			TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
		},
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", defaultPort),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigin)),
			GinMode:        os.Getenv("GIN_MODE"),
		},
	}, nil
}

// String masks the secret.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, TokenTTL: %s, Origins: %v, Secret: ***}",
		c.Server.Port, c.Auth.TokenTTL, c.Server.AllowedOrigins)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
