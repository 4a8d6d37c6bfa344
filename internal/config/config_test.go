package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PROVIDER", "CLIENT_ORIGIN", "SESSION_TTL", "SCRIPT_TIMEOUT", "MODES_FILE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" || cfg.Provider != ProviderCatalog || cfg.SessionTTL != 24*time.Hour {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.ClientOrigins) != 1 || cfg.ClientOrigins[0] != "http://localhost:3000" {
		t.Errorf("origins = %v", cfg.ClientOrigins)
	}
	if yr, _ := cfg.Ranges.For(provider.Beginner); yr.From != 2021 {
		t.Errorf("beginner range = %+v", yr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROVIDER", "Script")
	t.Setenv("CLIENT_ORIGIN", "http://a.test, http://b.test,")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SCRIPT_TIMEOUT", "12")
	t.Setenv("MODES_FILE", "")
	t.Setenv("NODE_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Production {
		t.Error("NODE_ENV=production should enable production mode")
	}
	if cfg.Provider != ProviderScript {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if len(cfg.ClientOrigins) != 2 || cfg.ClientOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.ClientOrigins)
	}
	if cfg.SessionTTL != 90*time.Minute || cfg.ScriptTimeout != 12*time.Second {
		t.Errorf("durations = %v, %v", cfg.SessionTTL, cfg.ScriptTimeout)
	}
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("MODES_FILE", "")
	t.Setenv("PROVIDER", "mongo")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
	t.Setenv("PROVIDER", "")
	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestLoadModes(t *testing.T) {
	dir := t.TempDir()

	ranges, err := LoadModes(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if len(ranges) != 3 {
		t.Errorf("missing file should give defaults, got %v", ranges)
	}

	path := filepath.Join(dir, "modes.toml")
	body := "[modes.beginner]\nfrom = 2020\nto = 2024\n\n[modes.Expert]\nfrom = 1970\nto = 2024\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ranges, err = LoadModes(path)
	if err != nil {
		t.Fatalf("LoadModes: %v", err)
	}
	if ranges[provider.Beginner] != (provider.YearRange{From: 2020, To: 2024}) {
		t.Errorf("beginner = %+v", ranges[provider.Beginner])
	}
	if ranges[provider.Expert].From != 1970 {
		t.Errorf("expert = %+v", ranges[provider.Expert])
	}
	if ranges[provider.Intermediate].From != 2000 {
		t.Errorf("intermediate default lost: %+v", ranges[provider.Intermediate])
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("[modes.Rookie]\nfrom = 2020\nto = 2024\n"), 0o644)
	if _, err := LoadModes(bad); err == nil {
		t.Error("expected error for unknown mode")
	}
	inverted := filepath.Join(dir, "inverted.toml")
	_ = os.WriteFile(inverted, []byte("[modes.Expert]\nfrom = 2024\nto = 1980\n"), 0o644)
	if _, err := LoadModes(inverted); err == nil {
		t.Error("expected error for inverted range")
	}
}
