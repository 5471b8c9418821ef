package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rodeofx/pyblish-qml/internal/config"
	"github.com/rodeofx/pyblish-qml/internal/host"
	"github.com/rodeofx/pyblish-qml/internal/journal"
	"github.com/rodeofx/pyblish-qml/internal/liveness"
	"github.com/rodeofx/pyblish-qml/internal/logging"
	"github.com/rodeofx/pyblish-qml/internal/pipeline"
	"github.com/rodeofx/pyblish-qml/internal/tui"
)

const migrationsPath = "internal/journal/migrations"

func main() {
	port := flag.Int("port", 0, "host control port (overrides config)")
	debug := flag.Bool("debug", false, "standalone mode: verbose logs, window close ends the process")
	preload := flag.Bool("preload", false, "start hidden and wait for the host to request show")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != 0 {
		cfg.Host.Port = *port
	}
	level := cfg.Log.Level
	if *debug {
		level = "debug"
	}
	logger := logging.Open(cfg.Log.Path, level)
	logger.Info().Int("port", cfg.Host.Port).Bool("debug", *debug).Msg("starting")

	ctx := context.Background()
	client := host.New(cfg.Host.Port)
	if !client.Ping(ctx) {
		// The pump and watchdog establish unresponsiveness on their own;
		// a failed startup ping is only worth a note.
		logger.Warn().Int("port", cfg.Host.Port).Msg("host not answering ping")
	}

	jnl := openJournal(ctx, cfg, logger)

	events := make(chan liveness.Event, 64)
	beats := liveness.NewHeartbeatState(time.Now())

	pump := &liveness.Pump{
		Channel: client,
		State:   beats,
		Events:  events,
		Log:     logging.Component(logger, "pump"),
		Yield:   cfg.Liveness.Yield,
	}
	if jnl != nil {
		pump.Journal = jnl
	}
	watchdog := &liveness.Watchdog{
		State:          beats,
		Interval:       cfg.Liveness.Interval,
		DeathThreshold: cfg.Liveness.DeathThreshold,
		Events:         events,
		Log:            logging.Component(logger, "watchdog"),
	}
	proxy := &pipeline.Proxy{
		Client: client,
		Log:    logging.Component(logger, "pipeline"),
	}

	// Fire-and-forget: both loops live until the process ends, a kill
	// message exits, or an unresponsive condition fires.
	go pump.Run(ctx)
	go watchdog.Run()

	if !*preload {
		events <- liveness.EventShowRequested{}
	}

	app := tui.New(tui.Options{
		Events:       events,
		Pipeline:     proxy,
		Beats:        beats,
		Journal:      jnl,
		Log:          logging.Component(logger, "ui"),
		KeepAlive:    !*debug,
		ReadyTimeout: cfg.UI.ReadyTimeout,
		HostPort:     cfg.Host.Port,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Msg("stopped")
}

// openJournal sets up the message journal; any failure downgrades to
// running without one. The journal is diagnostics, not a dependency.
func openJournal(ctx context.Context, cfg config.Config, logger zerolog.Logger) *journal.Journal {
	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
		logger.Warn().Err(err).Msg("journal dir unavailable, running without journal")
		return nil
	}
	db, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("journal open failed, running without journal")
		return nil
	}
	if err := journal.RunMigrations(db, migrationsPath); err != nil {
		logger.Warn().Err(err).Msg("journal migration failed, running without journal")
		_ = db.Close()
		return nil
	}
	jnl, err := journal.New(ctx, db)
	if err != nil {
		logger.Warn().Err(err).Msg("journal session failed, running without journal")
		_ = db.Close()
		return nil
	}
	return jnl
}
