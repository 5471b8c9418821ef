package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHost(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBase(srv.URL)
}

func TestPull(t *testing.T) {
	msgs := []string{"heartbeat", "show"}
	i := 0
	c := newTestHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pull" {
			http.NotFound(w, r)
			return
		}
		if i >= len(msgs) {
			http.Error(w, "gone", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(msgs[i] + "\n"))
		i++
	}))

	ctx := context.Background()
	for _, want := range msgs {
		got, err := c.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if got != want {
			t.Errorf("Pull = %q, want %q", got, want)
		}
	}

	// Exhausted host answers non-200: the channel is broken.
	if _, err := c.Pull(ctx); err == nil {
		t.Error("Pull after exhaustion: want error, got nil")
	}
}

func TestPullBrokenConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewWithBase(srv.URL)
	srv.Close()

	if _, err := c.Pull(context.Background()); err == nil {
		t.Error("Pull against closed server: want error, got nil")
	}
}

func TestPing(t *testing.T) {
	c := newTestHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	if !c.Ping(context.Background()) {
		t.Error("Ping = false against healthy host")
	}

	down := NewWithBase("http://127.0.0.1:1")
	if down.Ping(context.Background()) {
		t.Error("Ping = true against unreachable host")
	}
}

func TestStates(t *testing.T) {
	c := newTestHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/states" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"ready", "clean"})
	}))

	states, err := c.States(context.Background())
	if err != nil {
		t.Fatalf("States: %v", err)
	}
	if len(states) != 2 || states[0] != "ready" || states[1] != "clean" {
		t.Errorf("States = %v, want [ready clean]", states)
	}
}

func TestResetAndInfo(t *testing.T) {
	var gotReset bool
	var gotInfo string
	c := newTestHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reset":
			gotReset = true
		case "/info":
			var payload map[string]string
			_ = json.NewDecoder(r.Body).Decode(&payload)
			gotInfo = payload["text"]
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !gotReset {
		t.Error("Reset did not reach the host")
	}
	if err := c.Info(ctx, "hello"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if gotInfo != "hello" {
		t.Errorf("Info text = %q, want %q", gotInfo, "hello")
	}
}
