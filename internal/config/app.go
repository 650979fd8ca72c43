package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultSessionTTL = 24 * time.Hour

func BasePath() string {
	return strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// SessionTTL is how long an untouched play session is kept in memory.
func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok || ttlStr == "" {
		return defaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	return ttl, nil
}
