// Package inspection implements the repository-inspection tools: traversal
// of a repository's directory tree, selective content collection, and
// single-file content retrieval, with progress events broadcast to
// subscribed observers while the work runs.
package inspection

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// Service is the tool façade. It validates inputs before any network
// activity, orchestrates the traverser, fetcher, and collector, and shapes
// every outcome into a response payload: each operation returns either its
// success shape or *api.ErrorPayload, never an error value.
type Service struct {
	hosts     HostProvider
	bus       *broadcast.Broadcaster
	log       *slog.Logger
	traverser *Traverser
	fetcher   *Fetcher
	collector *Collector
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*options)

type options struct {
	diag Diagnostic
}

// WithDiagnostic overrides the sink receiving absorbed host failures.
// The default logs them at warn level.
func WithDiagnostic(diag Diagnostic) Option {
	return func(o *options) { o.diag = diag }
}

// NewService creates the façade with its traverser, fetcher, and collector.
func NewService(hosts HostProvider, bus *broadcast.Broadcaster, log *slog.Logger, opts ...Option) *Service {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.diag == nil {
		o.diag = func(op string, ref api.RepositoryRef, path string, err error) {
			log.Warn("host call absorbed",
				"op", op, "owner", ref.Owner, "repo", ref.Repo, "path", path, "error", err)
		}
	}

	fetcher := NewFetcher(bus, log, o.diag)
	return &Service{
		hosts:     hosts,
		bus:       bus,
		log:       log,
		traverser: NewTraverser(bus, log, o.diag),
		fetcher:   fetcher,
		collector: NewCollector(fetcher, bus),
		tracer:    otel.Tracer("inspection"),
	}
}

// RepositoryStructure implements the get_repository_structure tool. Content
// collection runs only when IncludeContent is set and at least one extension
// filter was supplied — an empty filter list skips collection entirely.
func (s *Service) RepositoryStructure(ctx context.Context, req api.StructureRequest) any {
	ctx, span := s.tracer.Start(ctx, "tool.get_repository_structure")
	defer span.End()

	if p := s.rejectCredential(req.Credential); p != nil {
		return p
	}
	if req.Owner == "" || req.Repo == "" {
		return &api.ErrorPayload{Error: ErrCodeInvalidRequest, Details: "owner and repo are required"}
	}

	host, err := s.hosts.Host(req.Credential)
	if err != nil {
		return &api.ErrorPayload{Error: ErrCodeInvalidCredential, Details: err.Error()}
	}

	ref := api.RepositoryRef{Owner: req.Owner, Repo: req.Repo}
	structure, err := s.traverser.Run(ctx, host, ref)
	if err != nil {
		s.bus.Publish(api.NewProgressEvent(api.EventRepoFetchError, map[string]any{
			"owner": ref.Owner,
			"repo":  ref.Repo,
			"error": err.Error(),
		}))
		s.log.Error("repository traversal failed", "owner", ref.Owner, "repo", ref.Repo, "error", err)
		return &api.ErrorPayload{Error: ErrCodeUnexpectedFailure, Details: err.Error()}
	}

	result := &api.RepositoryStructure{Repository: ref, Structure: structure}
	if req.IncludeContent && len(req.Extensions) > 0 {
		result.Files = s.collector.Collect(ctx, host, ref, structure, req.Extensions)
	}
	return result
}

// FileContent implements the get_file_content tool. An absent result is a
// not_found payload, never a success payload with empty content.
func (s *Service) FileContent(ctx context.Context, req api.FileContentRequest) any {
	ctx, span := s.tracer.Start(ctx, "tool.get_file_content")
	defer span.End()

	if p := s.rejectCredential(req.Credential); p != nil {
		return p
	}
	if req.Owner == "" || req.Repo == "" || req.Path == "" {
		return &api.ErrorPayload{Error: ErrCodeInvalidRequest, Details: "owner, repo and path are required"}
	}

	host, err := s.hosts.Host(req.Credential)
	if err != nil {
		return &api.ErrorPayload{Error: ErrCodeInvalidCredential, Details: err.Error()}
	}

	ref := api.RepositoryRef{Owner: req.Owner, Repo: req.Repo}
	content := s.fetcher.Fetch(ctx, host, ref, req.Path)
	if content == nil {
		s.bus.Publish(api.NewProgressEvent(api.EventFileFetchError, map[string]any{
			"owner": ref.Owner,
			"repo":  ref.Repo,
			"path":  req.Path,
			"error": "content not found",
		}))
		return &api.ErrorPayload{
			Error:   ErrCodeNotFound,
			Details: fmt.Sprintf("no file content at %q in %s/%s", req.Path, ref.Owner, ref.Repo),
		}
	}
	return &api.FileContentPayload{Path: req.Path, Content: *content}
}

// rejectCredential enforces the credential gate before any event is
// published or network call made. A server configured with its own GitHub
// App credential accepts requests without one.
func (s *Service) rejectCredential(token string) *api.ErrorPayload {
	if token == "" && !s.hosts.ServerAuthenticated() {
		return &api.ErrorPayload{Error: ErrCodeInvalidCredential, Details: InvalidCredentialError{}.Error()}
	}
	return nil
}
