// Package host implements the client side of the remote channel to the host
// process. The host serves a small local HTTP control surface: a blocking
// /pull for the next control message, /ping for liveness probes, and the
// pipeline endpoints /states, /reset and /info.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one host process on the loopback interface.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client bound to the host control port. Pull blocks
// server-side for as long as the host has nothing to say, so the underlying
// HTTP client carries no timeout; per-call deadlines come from the context.
func New(port int) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		http:    &http.Client{},
	}
}

// NewWithBase is used by tests to point the client at an httptest server.
func NewWithBase(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Pull blocks until the host sends the next control message and returns its
// raw token. Any transport failure or non-200 status means the channel is
// broken; the caller treats that as terminal.
func (c *Client) Pull(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pull", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pull: host returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pull: read body: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// Ping probes the host. False means unreachable or unhealthy; no error
// detail is surfaced because the caller only branches on reachability.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// States returns the pipeline's current activity labels.
func (c *Client) States(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/states", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("states: host returned %s", resp.Status)
	}
	var states []string
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		return nil, fmt.Errorf("states: decode: %w", err)
	}
	return states, nil
}

// Reset asks the pipeline to reset its state machine.
func (c *Client) Reset(ctx context.Context) error {
	return c.post(ctx, "/reset", nil)
}

// Info forwards diagnostic text to the pipeline's informational log sink.
func (c *Client) Info(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	return c.post(ctx, "/info", payload)
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: host returned %s", path, resp.Status)
	}
	return nil
}
