package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Host     HostConfig
	Liveness LivenessConfig
	UI       UIConfig
	Journal  JournalConfig
	Log      LogConfig
}

// HostConfig locates the host process control surface.
type HostConfig struct {
	Port int
}

// LivenessConfig tunes heartbeat detection.
type LivenessConfig struct {
	Interval       time.Duration
	DeathThreshold int `mapstructure:"death_threshold"`
	Yield          time.Duration
}

// UIConfig holds orchestrator settings.
type UIConfig struct {
	ReadyTimeout time.Duration `mapstructure:"ready_timeout"`
}

// JournalConfig holds message journal settings.
type JournalConfig struct {
	Path string
}

// LogConfig holds log sink settings. The TUI owns the terminal, so logs go
// to a file.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix PYBLISH_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "pyblish-qml")

	// default values
	v.SetDefault("host.port", 6000)
	v.SetDefault("liveness.interval", "1s")
	v.SetDefault("liveness.death_threshold", 2)
	v.SetDefault("liveness.yield", "10ms")
	v.SetDefault("ui.ready_timeout", "1s")
	v.SetDefault("journal.path", filepath.Join(dataDir, "journal.db"))
	v.SetDefault("log.path", filepath.Join(dataDir, "pyblish-qml.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PYBLISH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pyblish-qml"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PYBLISH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Liveness.Interval <= 0 {
		return Config{}, fmt.Errorf("liveness.interval must be positive, got %v", c.Liveness.Interval)
	}
	if c.Liveness.DeathThreshold <= 0 {
		return Config{}, fmt.Errorf("liveness.death_threshold must be positive, got %d", c.Liveness.DeathThreshold)
	}
	return c, nil
}
