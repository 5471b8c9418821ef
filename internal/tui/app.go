// Package tui is the orchestrator: it owns window visibility and process
// lifecycle, and its single-threaded update loop is the only place events
// from the background tasks are acted on.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rodeofx/pyblish-qml/internal/journal"
	"github.com/rodeofx/pyblish-qml/internal/liveness"
	"github.com/rodeofx/pyblish-qml/internal/pipeline"
	"github.com/rodeofx/pyblish-qml/internal/policy"
)

// DefaultReadyTimeout bounds the wait for pipeline readiness on show. The
// window is shown regardless once it elapses.
const DefaultReadyTimeout = time.Second

// infoRingSize caps the informational lines kept for display.
const infoRingSize = 5

// App is the bubbletea model wiring the liveness core to the window.
type App struct {
	events   <-chan liveness.Event
	pipeline pipeline.Pipeline
	beats    *liveness.HeartbeatState
	journal  *journal.Journal // optional
	log      zerolog.Logger
	keys     keyMap

	keepAlive    bool
	readyTimeout time.Duration
	hostPort     int

	visible       bool
	quitting      bool
	status        string
	readyWarned   bool
	infoLines     []string
	pipelineState string

	showJournal    bool
	journalEntries []journal.Entry

	width  int
	height int
}

// Options carries the startup wiring for New.
type Options struct {
	Events       <-chan liveness.Event
	Pipeline     pipeline.Pipeline
	Beats        *liveness.HeartbeatState
	Journal      *journal.Journal
	Log          zerolog.Logger
	KeepAlive    bool
	ReadyTimeout time.Duration
	HostPort     int
}

// New builds the orchestrator model. The window starts hidden; the first
// show request (local preload or a host "show" message) makes it visible.
func New(opts Options) *App {
	timeout := opts.ReadyTimeout
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	return &App{
		events:       opts.Events,
		pipeline:     opts.Pipeline,
		beats:        opts.Beats,
		journal:      opts.Journal,
		log:          opts.Log,
		keys:         newKeyMap(),
		keepAlive:    opts.KeepAlive,
		readyTimeout: timeout,
		hostPort:     opts.HostPort,
	}
}

type eventMsg struct {
	ev liveness.Event
}

type journalMsg struct {
	entries []journal.Entry
	err     error
}

type tickMsg time.Time

type pipelineStateMsg string

// waitForEvent arms the single consumer of the background event channel.
// It re-arms itself after every delivery, so per-source ordering is channel
// FIFO all the way into Update.
func waitForEvent(ch <-chan liveness.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{ev}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(waitForEvent(a.events), tick())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.ForceClose):
			return a.requestClose(true)
		case key.Matches(m, a.keys.Close):
			return a.requestClose(false)
		case key.Matches(m, a.keys.Journal):
			if a.showJournal {
				a.showJournal = false
				return a, nil
			}
			return a, a.loadJournalCmd()
		}

	case eventMsg:
		model, cmd := a.handleEvent(m.ev)
		return model, tea.Batch(cmd, waitForEvent(a.events))

	case journalMsg:
		if m.err != nil {
			a.status = "journal error: " + m.err.Error()
			return a, nil
		}
		a.journalEntries = m.entries
		a.showJournal = true

	case pipelineStateMsg:
		a.pipelineState = string(m)

	case tickMsg:
		// Refreshes the heartbeat-age display and the cached pipeline state.
		return a, tea.Batch(tick(), a.fetchPipelineStateCmd())
	}
	return a, nil
}

// fetchPipelineStateCmd samples the pipeline's dominant activity label off
// the UI context; View only ever reads the cached copy.
func (a *App) fetchPipelineStateCmd() tea.Cmd {
	if a.pipeline == nil || !a.visible {
		return nil
	}
	p := a.pipeline
	return func() tea.Msg {
		for _, label := range []string{pipeline.StatePublishing, pipeline.StateReady, pipeline.StateFinished} {
			if p.HasState(label) {
				return pipelineStateMsg(label)
			}
		}
		return pipelineStateMsg("idle")
	}
}

// handleEvent reacts to one background event on the UI context.
func (a *App) handleEvent(ev liveness.Event) (tea.Model, tea.Cmd) {
	switch ev := ev.(type) {
	case liveness.EventShowRequested:
		return a, a.show()

	case liveness.EventCloseRequested:
		// A host close is final. The close policy governs operator gestures
		// only; keep-alive must not downgrade a host close to a hide.
		a.log.Info().Msg("host requested close")
		return a.quit()

	case liveness.EventUnresponsive:
		a.log.Error().Str("cause", ev.Cause).Msg("host unresponsive, shutting down")
		a.status = "host unresponsive: " + ev.Cause
		return a.quit()

	case liveness.EventInfo:
		a.log.Info().Msg(ev.Text)
		a.pushInfo(ev.Text)
		if a.pipeline != nil {
			text := ev.Text
			return a, func() tea.Msg {
				a.pipeline.Info(text)
				return nil
			}
		}
	}
	return a, nil
}

// show makes the window visible. When it was hidden, it first waits - with
// a bounded timeout - for the pipeline to reach a ready state, then resets
// the pipeline. On timeout the window is shown anyway and a single warning
// is surfaced; a stuck pipeline must not hold the window hostage.
func (a *App) show() tea.Cmd {
	previouslyHidden := !a.visible
	a.visible = true

	if !previouslyHidden {
		return nil
	}

	if a.pipeline != nil {
		if !a.pipeline.HasState(pipeline.StateReady) && !a.pipeline.HasState(pipeline.StateFinished) {
			start := time.Now()
			if !a.pipeline.AwaitReady(a.readyTimeout) {
				a.log.Warn().Dur("waited", time.Since(start)).Msg("could not enter ready state")
				a.status = "warning: pipeline not ready"
				a.readyWarned = true
			} else {
				a.log.Debug().Dur("waited", time.Since(start)).Msg("pipeline ready")
			}
		}
		a.pipeline.Reset()
	}
	return nil
}

// hide keeps the process alive with the window invisible; the host can
// reshow it later. Pipeline state is untouched.
func (a *App) hide() {
	a.visible = false
	a.log.Info().Msg("window hidden, process stays alive")
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	return a, tea.Quit
}

// requestClose runs the close policy for an operator close gesture or a
// host close message. forced marks an explicit operator override.
func (a *App) requestClose(forced bool) (tea.Model, tea.Cmd) {
	decision := policy.Decide(forced, a.pipeline, a.keepAlive)
	switch decision {
	case policy.Accept:
		a.log.Info().Bool("forced", forced).Msg("close accepted")
		return a.quit()
	case policy.Reject:
		// Stays silent toward the operator; the window simply remains open.
		a.log.Debug().Msg("close rejected: publish in progress")
		return a, nil
	default:
		a.hide()
		return a, nil
	}
}

func (a *App) pushInfo(text string) {
	a.infoLines = append(a.infoLines, text)
	if len(a.infoLines) > infoRingSize {
		a.infoLines = a.infoLines[len(a.infoLines)-infoRingSize:]
	}
}

func (a *App) loadJournalCmd() tea.Cmd {
	if a.journal == nil {
		return nil
	}
	j := a.journal
	return func() tea.Msg {
		entries, err := j.Recent(context.Background(), 20)
		return journalMsg{entries: entries, err: err}
	}
}
