package liveness

import (
	"testing"
	"time"
)

func TestHeartbeatStateBeat(t *testing.T) {
	start := time.Now()
	s := NewHeartbeatState(start)

	last, count := s.Last()
	if !last.Equal(start) {
		t.Errorf("initial lastBeatAt = %v, want %v", last, start)
	}
	if count != 0 {
		t.Errorf("initial beatCount = %d, want 0", count)
	}

	s.Beat(start.Add(time.Second))
	last, count = s.Last()
	if !last.Equal(start.Add(time.Second)) {
		t.Errorf("lastBeatAt = %v, want %v", last, start.Add(time.Second))
	}
	if count != 1 {
		t.Errorf("beatCount = %d, want 1", count)
	}
}

func TestHeartbeatStateMonotonic(t *testing.T) {
	start := time.Now()
	s := NewHeartbeatState(start)
	s.Beat(start.Add(2 * time.Second))

	// A beat stamped in the past must not move lastBeatAt backwards.
	s.Beat(start.Add(time.Second))

	last, count := s.Last()
	if !last.Equal(start.Add(2 * time.Second)) {
		t.Errorf("lastBeatAt regressed to %v", last)
	}
	if count != 2 {
		t.Errorf("beatCount = %d, want 2", count)
	}
}
