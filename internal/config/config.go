// Package config reads server settings from the environment (optionally
// seeded from a .env file by the caller) and the optional TOML mode file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

// Provider kinds.
const (
	ProviderCatalog = "catalog"
	ProviderScript  = "script"
)

// Config holds everything the server reads at startup.
type Config struct {
	Port          string
	LogLevel      string
	LogFile       string
	ClientOrigins []string
	DBPath        string
	Provider      string
	PythonBin     string
	StatsScript   string
	ScriptTimeout time.Duration
	SessionSecret string
	SessionTTL    time.Duration
	DailySalt     string
	ModesFile     string
	Ranges        provider.Ranges
	// Production turns on Secure/SameSite=None session cookies.
	Production bool
}

// Load reads the environment and, if MODES_FILE is set, the mode file.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "5000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		ClientOrigins: splitList(getEnv("CLIENT_ORIGIN", "http://localhost:3000")),
		DBPath:        getEnv("DB_PATH", "./data/mlbwordle.db"),
		Provider:      strings.ToLower(getEnv("PROVIDER", ProviderCatalog)),
		PythonBin:     getEnv("PYTHON_BIN", "python3"),
		StatsScript:   getEnv("STATS_SCRIPT", "backend/mlb_stats.py"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		ModesFile:     os.Getenv("MODES_FILE"),
		Production:    os.Getenv("NODE_ENV") == "production",
	}

	var err error
	if cfg.ScriptTimeout, err = getDuration("SCRIPT_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	switch cfg.Provider {
	case ProviderCatalog, ProviderScript:
	default:
		return Config{}, fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderCatalog, ProviderScript, cfg.Provider)
	}

	cfg.Ranges = provider.DefaultRanges()
	if cfg.ModesFile != "" {
		if cfg.Ranges, err = LoadModes(cfg.ModesFile); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// ModesFile is the TOML layout of MODES_FILE:
//
//	[modes.Beginner]
//	from = 2021
//	to = 2024
type ModesFile struct {
	Modes map[string]provider.YearRange `toml:"modes"`
}

// LoadModes overlays the ranges in path onto the defaults. A missing file is
// not an error.
func LoadModes(path string) (provider.Ranges, error) {
	ranges := provider.DefaultRanges()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ranges, nil
		}
		return nil, fmt.Errorf("stat modes file: %w", err)
	}
	var f ModesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode modes file: %w", err)
	}
	for name, yr := range f.Modes {
		m, err := provider.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("modes file: %w", err)
		}
		if yr.From <= 0 || yr.To < yr.From {
			return nil, fmt.Errorf("modes file: %s: bad range %d-%d", m, yr.From, yr.To)
		}
		ranges[m] = yr
	}
	return ranges, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
