// Package liveness keeps the front-end synchronized with the host process:
// a message pump pulls and dispatches control messages, and a watchdog
// detects host silence through missed heartbeats.
//
// Both run as plain goroutines. They never touch UI state; everything they
// have to say is sent as an Event over a single channel that the UI loop
// drains, so ordering per source is channel FIFO.
package liveness

// Event is raised by the pump or the watchdog for the UI loop to consume.
type Event interface{ event() }

// EventShowRequested asks the orchestrator to show the window.
type EventShowRequested struct{}

// EventCloseRequested is the host telling the front-end to shut down for
// good. Unlike an operator close gesture it is final: the close policy and
// keep-alive do not apply.
type EventCloseRequested struct{}

// EventInfo carries diagnostic text from the host. Non-fatal.
type EventInfo struct {
	Text string
}

// EventUnresponsive reports that the host is gone: either the channel broke
// or heartbeats stopped. Terminal; the orchestrator quits on receipt.
type EventUnresponsive struct {
	Cause string
}

func (EventShowRequested) event()  {}
func (EventCloseRequested) event() {}
func (EventInfo) event()           {}
func (EventUnresponsive) event()   {}
