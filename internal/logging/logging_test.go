package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log := Open(path, "debug")

	pump := Component(log, "pump")
	pump.Info().Str("msg_kind", "show").Msg("dispatched")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"component":"pump"`) {
		t.Errorf("log output missing component tag: %s", out)
	}
	if !strings.Contains(out, "dispatched") {
		t.Errorf("log output missing message: %s", out)
	}
}

func TestOpenLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := Open(path, "warn")

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")

	data, _ := os.ReadFile(path)
	out := string(data)
	if strings.Contains(out, "quiet") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn line missing")
	}
}

func TestParseLevelFallback(t *testing.T) {
	if got := parseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Errorf("parseLevel(nonsense) = %v, want info", got)
	}
	if got := parseLevel(" DEBUG "); got != zerolog.DebugLevel {
		t.Errorf("parseLevel(' DEBUG ') = %v, want debug", got)
	}
}

func TestOpenUnwritablePathDiscards(t *testing.T) {
	// A path under a file (not a dir) cannot be created.
	base := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(base, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	log := Open(filepath.Join(base, "app.log"), "info")
	// Must not panic; output is discarded.
	log.Info().Msg("nowhere")
}
