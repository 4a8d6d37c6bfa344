package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/catalog"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "mlbwordle.db"))
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PROVIDER", "")
	t.Setenv("MODES_FILE", "")
	return dir
}

func TestCatalogImportThenCount(t *testing.T) {
	dir := tempEnv(t)
	file := filepath.Join(dir, "games.jsonl")
	lines := strings.Join([]string{
		`{"gamePK": 1, "boxscore": "A | B\nT: 3:01.\nApril 2, 2022\n\n"}`,
		`{"gamePK": 2, "boxscore": "A | B\nT: 2:40.\nMay 9, 1999\n\n"}`,
		`{"gamePK": 3, "boxscore": "no date here"}`,
		`# comment`,
	}, "\n")
	if err := os.WriteFile(file, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "catalog", "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 games") {
		t.Errorf("import output = %q", out)
	}

	out, err = execute(t, "catalog", "count")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	for _, want := range []string{"Beginner", "2021-2024  1 games", "Intermediate", "2000-2024  1 games", "Expert", "1980-2024  2 games"} {
		if !strings.Contains(out, want) {
			t.Errorf("count output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogImport_MissingFile(t *testing.T) {
	tempEnv(t)
	if _, err := execute(t, "catalog", "import", "/does/not/exist.jsonl"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSelectProvider(t *testing.T) {
	dir := tempEnv(t)
	cat, err := catalog.Open(filepath.Join(dir, "c.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	if p := selectProvider(config.Config{Provider: config.ProviderCatalog}, cat); p != cat {
		t.Errorf("catalog provider = %T", p)
	}
	p := selectProvider(config.Config{Provider: config.ProviderScript, PythonBin: "python3", StatsScript: "x.py"}, cat)
	wt, ok := p.(*catalog.WriteThrough)
	if !ok || wt.Catalog != cat {
		t.Fatalf("script provider = %T", p)
	}
}

func TestJanitorInterval(t *testing.T) {
	if got := janitorInterval(time.Minute); got != time.Minute {
		t.Errorf("short ttl interval = %s", got)
	}
	if got := janitorInterval(24 * time.Hour); got != 6*time.Hour {
		t.Errorf("day ttl interval = %s", got)
	}
}
