// Package pipeline is the boundary to the publishing pipeline collaborator.
// This core never inspects pipeline internals; it asks about activity-label
// membership, waits for readiness, and forwards resets and diagnostics.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rodeofx/pyblish-qml/internal/host"
	"github.com/rodeofx/pyblish-qml/internal/policy"
)

// Activity labels this core cares about. The publishing label is owned by
// the close policy, its consumer; it is aliased here so proxy callers deal
// in one vocabulary.
const (
	StateReady      = "ready"
	StateFinished   = "finished"
	StatePublishing = policy.StatePublishing
)

// Pipeline is what the orchestrator needs from the collaborator.
type Pipeline interface {
	// HasState reports whether label is among the current activity states.
	HasState(label string) bool

	// AwaitReady blocks until the pipeline reaches a ready or finished
	// state, or the timeout elapses. Returns false on timeout.
	AwaitReady(timeout time.Duration) bool

	// Reset asks the pipeline to reset its state machine.
	Reset()

	// Info forwards diagnostic text to the pipeline's log sink.
	Info(text string)
}

// DefaultPollInterval is the cadence AwaitReady re-checks the host. Kept
// well under the 1s readiness budget.
const DefaultPollInterval = 50 * time.Millisecond

// Proxy implements Pipeline over the host control surface.
type Proxy struct {
	Client *host.Client
	Log    zerolog.Logger
	Poll   time.Duration // defaults to DefaultPollInterval
}

// HasState queries the host for current activity states. A query failure
// reads as "label absent": if the channel is broken the pump is already
// tearing the process down, and pretending the label exists would wedge
// close decisions in the meantime.
func (p *Proxy) HasState(label string) bool {
	states, err := p.Client.States(context.Background())
	if err != nil {
		p.Log.Debug().Err(err).Msg("state query failed")
		return false
	}
	for _, s := range states {
		if s == label {
			return true
		}
	}
	return false
}

// AwaitReady polls until ready or finished appears or the timeout elapses.
func (p *Proxy) AwaitReady(timeout time.Duration) bool {
	poll := p.Poll
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		states, err := p.Client.States(context.Background())
		if err != nil {
			p.Log.Debug().Err(err).Msg("state query failed")
		}
		for _, s := range states {
			if s == StateReady || s == StateFinished {
				return true
			}
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(poll)
	}
}

// Reset forwards to the host; failures are logged, not propagated, since a
// failed reset after show leaves the pipeline in whatever state it was in.
func (p *Proxy) Reset() {
	if err := p.Client.Reset(context.Background()); err != nil {
		p.Log.Warn().Err(err).Msg("pipeline reset failed")
	}
}

// Info forwards diagnostic text; best effort.
func (p *Proxy) Info(text string) {
	if err := p.Client.Info(context.Background(), text); err != nil {
		p.Log.Debug().Err(err).Msg("pipeline info sink failed")
	}
}
