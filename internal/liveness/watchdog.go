package liveness

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultInterval is the expected heartbeat cadence from the host.
	DefaultInterval = time.Second

	// DefaultDeathThreshold is how many intervals may elapse without a
	// heartbeat before the host is presumed dead.
	DefaultDeathThreshold = 2
)

// Watchdog watches HeartbeatState on its own schedule, independent of
// message arrival. When the host has been silent for longer than
// Interval*DeathThreshold it emits a single EventUnresponsive and stops;
// one silence episode produces one event, never a storm.
type Watchdog struct {
	State          *HeartbeatState
	Interval       time.Duration
	DeathThreshold int
	Events         chan<- Event
	Log            zerolog.Logger
}

// Run ticks until the unresponsive condition fires. Call it on its own
// goroutine; it never blocks on anything but its own ticker and the events
// channel, and it never touches UI state.
func (w *Watchdog) Run() {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	threshold := w.DeathThreshold
	if threshold <= 0 {
		threshold = DefaultDeathThreshold
	}
	deadline := interval * time.Duration(threshold)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		last, _ := w.State.Last()
		elapsed := now.Sub(last)
		if elapsed <= deadline {
			continue
		}
		w.Log.Warn().
			Dur("elapsed", elapsed).
			Dur("deadline", deadline).
			Msg("heartbeat interval elapsed")
		w.Events <- EventUnresponsive{Cause: "heartbeat timeout"}
		return
	}
}
