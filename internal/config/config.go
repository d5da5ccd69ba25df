package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	JournalNone     = "none"
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

type APIConfig struct {
	Addr        string `env:"SHOPKEEP_API_ADDR" envDefault:":8080"`
	LogLevel    string `env:"SHOPKEEP_LOG_LEVEL" envDefault:"info"`
	Preset      string `env:"SHOPKEEP_PRESET" envDefault:"standard"`
	PresetsFile string `env:"SHOPKEEP_PRESETS_FILE"`
	LogWindow   int    `env:"SHOPKEEP_LOG_WINDOW" envDefault:"8"`
	Journal     string `env:"SHOPKEEP_JOURNAL" envDefault:"none"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SHOPKEEP_SQLITE_PATH" envDefault:"shopkeep.db"`
	DBMaxConns  int32  `env:"SHOPKEEP_DB_MAX_CONNS" envDefault:"10"`
}

type CLIConfig struct {
	APIBaseURL  string `env:"SHOPKEEP_API_BASE_URL" envDefault:"http://localhost:8080"`
	Preset      string `env:"SHOPKEEP_PRESET" envDefault:"standard"`
	PresetsFile string `env:"SHOPKEEP_PRESETS_FILE"`
}

func LoadAPIFromEnv() (APIConfig, error) {
	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Addr = port
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.Journal = strings.ToLower(strings.TrimSpace(cfg.Journal))
	if cfg.Journal == "" {
		cfg.Journal = JournalNone
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":8080"
	}
	if strings.TrimSpace(cfg.Preset) == "" {
		cfg.Preset = "standard"
	}
	if cfg.LogWindow <= 0 {
		cfg.LogWindow = 8
	}

	switch cfg.Journal {
	case JournalNone, JournalSQLite:
	case JournalPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("DATABASE_URL is required for the postgres journal")
		}
	default:
		return cfg, fmt.Errorf("unknown journal %q (want none, postgres or sqlite)", cfg.Journal)
	}
	return cfg, nil
}

func (c APIConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func LoadCLIFromEnv() CLIConfig {
	var cfg CLIConfig
	if err := env.Parse(&cfg); err != nil {
		cfg = CLIConfig{APIBaseURL: "http://localhost:8080", Preset: "standard"}
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if strings.TrimSpace(cfg.Preset) == "" {
		cfg.Preset = "standard"
	}
	return cfg
}
