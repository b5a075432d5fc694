// Package stream consumes the inspection server's SSE event feed.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Event is one server-sent event frame: the event name and its data payload.
type Event struct {
	Name string
	Data string
}

// Client subscribes to the progress-event stream of an inspection server.
type Client struct {
	BaseURL string
	Log     *slog.Logger
}

// NewClient creates a stream client for the server at baseURL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Log: log}
}

// Subscribe connects to /sse and invokes handle for every event frame until
// ctx is cancelled or the server closes the stream. Keep-alive pings are
// surfaced like any other event; callers filter what they need.
func (c *Client) Subscribe(ctx context.Context, handle func(Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/sse", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s/sse: %w", c.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // non-actionable after reading

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s/sse returned %d", c.BaseURL, resp.StatusCode)
	}

	return Parse(resp.Body, handle)
}

// Parse reads the SSE wire format from r: "event:" and "data:" lines
// accumulate into a frame, a blank line dispatches it. Unknown field names
// and comment lines are ignored.
func Parse(r io.Reader, handle func(Event)) error {
	sc := bufio.NewScanner(r)
	var ev Event
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if ev.Name != "" || ev.Data != "" {
				handle(ev)
			}
			ev = Event{}
		case strings.HasPrefix(line, "event:"):
			ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			d := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
			if ev.Data != "" {
				ev.Data += "\n"
			}
			ev.Data += d
		}
	}
	return sc.Err()
}
