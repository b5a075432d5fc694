package inspection_test

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testRef = api.RepositoryRef{Owner: "acme", Repo: "site"}

// Compile-time interface compliance checks.
var (
	_ inspection.Host         = (*inmemHost)(nil)
	_ inspection.HostProvider = (*stubProvider)(nil)
)

// inmemHost answers listing and content requests from a seeded path→content
// map, the way the GitHub contents API would: a directory path yields its
// immediate children in lexical order, a file path yields the single entry
// with base64-encoded content.
type inmemHost struct {
	mu       sync.Mutex
	files    map[string]string
	failures map[string]error
	listed   []string
}

func newInmemHost() *inmemHost {
	return &inmemHost{
		files:    make(map[string]string),
		failures: make(map[string]error),
	}
}

func (h *inmemHost) set(path, content string) {
	h.files[path] = content
}

func (h *inmemHost) failAt(path string, err error) {
	h.failures[path] = err
}

func (h *inmemHost) listedPaths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.listed...)
}

func (h *inmemHost) ListEntries(_ context.Context, _ api.RepositoryRef, path string) (*inspection.Listing, error) {
	h.mu.Lock()
	h.listed = append(h.listed, path)
	h.mu.Unlock()

	if err, ok := h.failures[path]; ok {
		return nil, err
	}
	if content, ok := h.files[path]; ok {
		e := h.fileEntry(path, content)
		return &inspection.Listing{File: &e}, nil
	}
	return &inspection.Listing{Dir: h.children(path)}, nil
}

func (h *inmemHost) GetEntry(_ context.Context, _ api.RepositoryRef, path string) (*inspection.Entry, error) {
	if err, ok := h.failures[path]; ok {
		return nil, err
	}
	content, ok := h.files[path]
	if !ok {
		// Directory or missing path — no file entry to return.
		return nil, nil
	}
	e := h.fileEntry(path, content)
	return &e, nil
}

func (h *inmemHost) fileEntry(path, content string) inspection.Entry {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	return inspection.Entry{
		Name:        name,
		Path:        path,
		Size:        len(content),
		Type:        api.NodeTypeFile,
		DownloadURL: "https://raw.example.com/" + path,
		Content:     &encoded,
		Encoding:    "base64",
	}
}

func (h *inmemHost) children(dir string) []inspection.Entry {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	type child struct {
		name  string
		isDir bool
	}
	seen := make(map[string]child)
	for path := range h.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := path[len(prefix):]
		parts := strings.SplitN(rest, "/", 2)
		seen[parts[0]] = child{name: parts[0], isDir: len(parts) > 1}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]inspection.Entry, 0, len(names))
	for _, name := range names {
		c := seen[name]
		path := prefix + name
		if c.isDir {
			entries = append(entries, inspection.Entry{
				Name: name,
				Path: path,
				Type: api.NodeTypeDir,
			})
			continue
		}
		entries = append(entries, h.fileEntry(path, h.files[path]))
	}
	return entries
}

// stubProvider hands out a fixed Host regardless of credential.
type stubProvider struct {
	host       inspection.Host
	serverAuth bool
}

func (p *stubProvider) ServerAuthenticated() bool { return p.serverAuth }

func (p *stubProvider) Host(token string) (inspection.Host, error) {
	if token == "" && !p.serverAuth {
		return nil, inspection.InvalidCredentialError{}
	}
	return p.host, nil
}

// drainEvents empties ch and returns everything buffered so far.
func drainEvents(ch <-chan api.ProgressEvent) []api.ProgressEvent {
	var events []api.ProgressEvent
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func eventKinds(events []api.ProgressEvent) []string {
	kinds := make([]string, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func newBus() *broadcast.Broadcaster {
	return broadcast.NewWithBuffer(discard(), 256)
}

// absorbed records diagnostic callbacks for assertions.
type absorbed struct {
	mu    sync.Mutex
	calls []string
}

func (a *absorbed) diag(op string, _ api.RepositoryRef, path string, _ error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, op+" "+path)
}

func (a *absorbed) list() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}
