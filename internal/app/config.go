package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 12 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig reads a .env file when present, then the environment, falling
// back to defaults. Flags override both at the CLI layer.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
	}
	if v := os.Getenv("FITTRACK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FITTRACK_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid FITTRACK_TIMEOUT %q (expected seconds)", v)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	return cfg, nil
}
