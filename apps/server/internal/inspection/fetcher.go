package inspection

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// Fetcher retrieves and decodes the content of a single file.
type Fetcher struct {
	bus  *broadcast.Broadcaster
	diag Diagnostic
	log  *slog.Logger
}

// NewFetcher creates a Fetcher. diag receives absorbed host failures.
func NewFetcher(bus *broadcast.Broadcaster, log *slog.Logger, diag Diagnostic) *Fetcher {
	return &Fetcher{bus: bus, diag: diag, log: log}
}

// Fetch returns the decoded content of path, or nil when the path is not a
// plain file or the host call fails. Failures are absorbed: they reach the
// diagnostic sink but never the caller, which cannot distinguish "not a
// file" from "call failed" through the return value alone.
//
// Emits file_fetch_started before the host call and file_fetch_completed
// (with a success flag) after; error events are left to callers, which have
// repository context.
func (f *Fetcher) Fetch(ctx context.Context, host Host, ref api.RepositoryRef, path string) *string {
	f.bus.Publish(api.NewProgressEvent(api.EventFileFetchStarted, map[string]any{"path": path}))

	content := f.fetch(ctx, host, ref, path)

	f.bus.Publish(api.NewProgressEvent(api.EventFileFetchCompleted, map[string]any{
		"path":    path,
		"success": content != nil,
	}))
	return content
}

func (f *Fetcher) fetch(ctx context.Context, host Host, ref api.RepositoryRef, path string) *string {
	entry, err := host.GetEntry(ctx, ref, path)
	if err != nil {
		f.diag("get", ref, path, err)
		return nil
	}
	if entry == nil || entry.Content == nil {
		return nil
	}

	if entry.Encoding == "base64" {
		// The contents API wraps base64 at 60 columns; strip the newlines
		// before decoding.
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(*entry.Content, "\n", ""))
		if err != nil {
			f.diag("decode", ref, path, err)
			return nil
		}
		text := string(decoded)
		return &text
	}
	return entry.Content
}
