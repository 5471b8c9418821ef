package liveness

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/rodeofx/pyblish-qml/internal/proto"
)

// DefaultYield is how long the pump sleeps between iterations. The pause
// keeps a tight stream of messages from starving event delivery to the UI
// loop; it is a fairness measure, not a rate limit.
const DefaultYield = 10 * time.Millisecond

// Channel is the remote link to the host as seen by the pump. Pull blocks
// until the next control message arrives and fails when the connection is
// broken or closed.
type Channel interface {
	Pull(ctx context.Context) (string, error)
}

// Recorder persists pulled messages for diagnostics. Failures are logged and
// otherwise ignored; the journal is never allowed to take the pump down.
type Recorder interface {
	Record(ctx context.Context, raw, kind string) error
}

// Pump pulls control messages from the host, updates heartbeat bookkeeping,
// and dispatches everything else as events to the UI loop. One instance per
// process.
type Pump struct {
	Channel Channel
	State   *HeartbeatState
	Events  chan<- Event
	Journal Recorder // optional
	Log     zerolog.Logger
	Yield   time.Duration // defaults to DefaultYield

	// Exit is called on a kill message. Defaults to os.Exit; tests stub it.
	Exit func(code int)
}

// Run loops until the channel breaks or a kill message arrives. A broken
// channel is reported exactly like a missed-heartbeat timeout: one
// EventUnresponsive, then the loop stops. No reconnection is attempted.
func (p *Pump) Run(ctx context.Context) {
	yield := p.Yield
	if yield <= 0 {
		yield = DefaultYield
	}
	exit := p.Exit
	if exit == nil {
		exit = os.Exit
	}

	for {
		raw, err := p.Channel.Pull(ctx)
		if err != nil {
			p.Log.Error().Err(err).Msg("pull failed, host presumed unreachable")
			p.Events <- EventUnresponsive{Cause: err.Error()}
			return
		}

		msg := proto.Classify(raw)
		p.record(ctx, raw, msg.Kind.String())

		switch msg.Kind {
		case proto.KindHeartbeat:
			p.State.Beat(time.Now())

		case proto.KindShow:
			p.Events <- EventShowRequested{}

		case proto.KindClose:
			p.Events <- EventCloseRequested{}

		case proto.KindKill:
			p.Log.Error().Msg("kill message received from host, shutting down now")
			exit(1)
			return

		default:
			text := fmt.Sprintf("unhandled incoming message: %q", msg.Text)
			if s := proto.Suggest(msg.Text); s != "" {
				text += fmt.Sprintf(" (did you mean %q?)", s)
			}
			p.Events <- EventInfo{Text: text}
		}

		time.Sleep(yield)
	}
}

func (p *Pump) record(ctx context.Context, raw, kind string) {
	if p.Journal == nil {
		return
	}
	if err := p.Journal.Record(ctx, raw, kind); err != nil {
		p.Log.Warn().Err(err).Msg("journal write failed")
	}
}
