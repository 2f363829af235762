package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Gravitalia/feed/api"
	"github.com/Gravitalia/feed/feed"
)

// Config is read from the environment, after the .env file is loaded
type Config struct {
	Port           string
	APIURL         string
	APITimeout     time.Duration
	UserPolicy     feed.UserPolicy
	IDPolicy       feed.IDPolicy
	RefreshSpec    string
	NatsURL        string
	NatsSubject    string
	MemURL         string
	SubmitGuardTTL time.Duration
	ZipkinAddress  string
	Debug          bool
}

// Load reads every variable and applies defaults
func Load() (Config, error) {
	config := Config{
		Port:          getenv("PORT", "8080"),
		APIURL:        getenv("API_URL", api.DefaultURL),
		RefreshSpec:   os.Getenv("REFRESH_SCHEDULE"),
		NatsURL:       os.Getenv("NATS_URL"),
		NatsSubject:   getenv("NATS_SUBJECT", "feed.posts"),
		MemURL:        os.Getenv("MEM_URL"),
		ZipkinAddress: os.Getenv("ZIPKIN_ADDRESS"),
	}

	var err error
	if config.APITimeout, err = duration("API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if config.SubmitGuardTTL, err = duration("SUBMIT_GUARD_TTL", 10*time.Second); err != nil {
		return Config{}, err
	}
	if config.UserPolicy, err = feed.ParseUserPolicy(os.Getenv("UNKNOWN_USER_POLICY")); err != nil {
		return Config{}, fmt.Errorf("UNKNOWN_USER_POLICY: %w", err)
	}
	if config.IDPolicy, err = feed.ParseIDPolicy(os.Getenv("ID_POLICY")); err != nil {
		return Config{}, fmt.Errorf("ID_POLICY: %w", err)
	}
	if value := os.Getenv("DEBUG"); value != "" {
		if config.Debug, err = strconv.ParseBool(value); err != nil {
			return Config{}, fmt.Errorf("DEBUG: %w", err)
		}
	}

	return config, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// duration reads a Go duration ("5s") or a number of seconds ("5")
func duration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	var d time.Duration
	if seconds, err := strconv.Atoi(value); err == nil {
		d = time.Duration(seconds) * time.Second
	} else if d, err = time.ParseDuration(value); err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, value)
	}

	return d, nil
}
