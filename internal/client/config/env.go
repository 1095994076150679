package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A
// .env file in the working directory is loaded first if present; real
// environment variables win over the file, which is godotenv's default.
//
// Recognized variables:
//
//	GESTOR_SERVER_URL       backend base URL
//	GESTOR_DB_PATH          path of the local SQLite cache
//	GESTOR_ONLINE_INTERVAL  watcher probe interval, Go duration syntax
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("GESTOR_SERVER_URL")); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GESTOR_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("GESTOR_ONLINE_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OnlineCheckInterval = d
		}
	}
}
