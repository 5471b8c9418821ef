package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PYBLISH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host.Port != 6000 {
		t.Errorf("host.port = %d, want 6000", cfg.Host.Port)
	}
	if cfg.Liveness.Interval != time.Second {
		t.Errorf("liveness.interval = %v, want 1s", cfg.Liveness.Interval)
	}
	if cfg.Liveness.DeathThreshold != 2 {
		t.Errorf("liveness.death_threshold = %d, want 2", cfg.Liveness.DeathThreshold)
	}
	if cfg.Liveness.Yield != 10*time.Millisecond {
		t.Errorf("liveness.yield = %v, want 10ms", cfg.Liveness.Yield)
	}
	if cfg.UI.ReadyTimeout != time.Second {
		t.Errorf("ui.ready_timeout = %v, want 1s", cfg.UI.ReadyTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.Journal.Path == "" {
		t.Error("journal.path is empty")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[host]
port = 9090

[liveness]
interval = "250ms"
death_threshold = 5

[log]
level = "debug"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PYBLISH_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host.Port != 9090 {
		t.Errorf("host.port = %d, want 9090", cfg.Host.Port)
	}
	if cfg.Liveness.Interval != 250*time.Millisecond {
		t.Errorf("liveness.interval = %v, want 250ms", cfg.Liveness.Interval)
	}
	if cfg.Liveness.DeathThreshold != 5 {
		t.Errorf("liveness.death_threshold = %d, want 5", cfg.Liveness.DeathThreshold)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	// untouched keys keep their defaults
	if cfg.UI.ReadyTimeout != time.Second {
		t.Errorf("ui.ready_timeout = %v, want default 1s", cfg.UI.ReadyTimeout)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[liveness]
death_threshold = 0
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PYBLISH_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Load accepted death_threshold = 0")
	}
}
