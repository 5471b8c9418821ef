package liveness

import (
	"sync"
	"time"
)

// HeartbeatState is the bookkeeping shared between the pump (writer) and the
// watchdog (reader). Created once at startup, never reset.
type HeartbeatState struct {
	mu         sync.Mutex
	lastBeatAt time.Time
	beatCount  uint64
}

// NewHeartbeatState seeds lastBeatAt with now, so a host that never sends a
// single heartbeat still trips the watchdog relative to startup.
func NewHeartbeatState(now time.Time) *HeartbeatState {
	return &HeartbeatState{lastBeatAt: now}
}

// Beat records a heartbeat. lastBeatAt is monotonically non-decreasing.
func (s *HeartbeatState) Beat(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastBeatAt) {
		s.lastBeatAt = now
	}
	s.beatCount++
}

// Last returns the time of the most recent beat and the total beat count.
func (s *HeartbeatState) Last() (time.Time, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBeatAt, s.beatCount
}
