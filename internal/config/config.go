package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type APIConfig struct {
	Addr         string
	SavePath     string
	DatabaseURL  string
	SaveSlot     string
	TickEvery    time.Duration
	MaxTickDelta time.Duration
	SaveEvery    time.Duration
}

type CLIConfig struct {
	APIBaseURL string
	SavePath   string
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("HEADLINER_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:         addr,
		SavePath:     envDefault("HEADLINER_SAVE_PATH", defaultSavePath()),
		DatabaseURL:  strings.TrimSpace(os.Getenv("HEADLINER_DATABASE_URL")),
		SaveSlot:     envDefault("HEADLINER_SAVE_SLOT", "default"),
		TickEvery:    envDurationDefault("HEADLINER_TICK_EVERY", 100*time.Millisecond),
		MaxTickDelta: envDurationDefault("HEADLINER_MAX_TICK_DELTA", 5*time.Second),
		SaveEvery:    envDurationDefault("HEADLINER_SAVE_EVERY", 10*time.Second),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("HDL_API_BASE_URL", "http://localhost:8080"), "/"),
		SavePath:   envDefault("HEADLINER_SAVE_PATH", defaultSavePath()),
	}
}

func defaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "headliner-save.json"
	}
	return filepath.Join(home, ".headliner", "save.json")
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
