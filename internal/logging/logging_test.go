package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_FileReceivesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	closer, err := Setup(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info().Str("mode", "Expert").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"mode":"Expert"`) || !strings.Contains(string(b), `"message":"hello"`) {
		t.Errorf("log file = %s", b)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %s", zerolog.GlobalLevel())
	}
}

func TestSetup_ConsoleOnly(t *testing.T) {
	closer, err := Setup(Config{Level: "nonsense"})
	if err != nil || closer != nil {
		t.Fatalf("Setup = %v, %v", closer, err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("bad level should fall back to info, got %s", zerolog.GlobalLevel())
	}
}
