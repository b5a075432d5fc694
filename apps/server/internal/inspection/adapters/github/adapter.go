// Package github implements the inspection.Host and inspection.HostProvider
// ports using the official go-github library. The contents API maps exactly
// onto the tagged listing variant: GetContents returns either a directory
// slice or a single file description.
package github

import (
	"context"
	"fmt"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	platformgithub "github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/github"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// Compile-time checks against the inspection ports.
var (
	_ inspection.Host         = (*Adapter)(nil)
	_ inspection.HostProvider = (*Provider)(nil)
)

// Adapter wraps an authenticated go-github client as a repository host.
type Adapter struct {
	gh *gogithub.Client
}

// New creates an Adapter from an authenticated *github.Client.
func New(gh *gogithub.Client) *Adapter {
	return &Adapter{gh: gh}
}

// ListEntries lists path ("" for the repository root). The returned Listing
// carries the directory slice or, when path names a file, that single entry.
func (a *Adapter) ListEntries(ctx context.Context, ref api.RepositoryRef, path string) (*inspection.Listing, error) {
	fc, dir, _, err := a.gh.Repositories.GetContents(ctx, ref.Owner, ref.Repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list contents %s/%s/%s: %w", ref.Owner, ref.Repo, path, err)
	}
	if fc != nil {
		e := entryFrom(fc)
		return &inspection.Listing{File: &e}, nil
	}

	entries := make([]inspection.Entry, 0, len(dir))
	for _, rc := range dir {
		entries = append(entries, entryFrom(rc))
	}
	return &inspection.Listing{Dir: entries}, nil
}

// GetEntry fetches path with its inline content. Directories come back as a
// nil entry — the contents API returns a listing for them, not a file.
func (a *Adapter) GetEntry(ctx context.Context, ref api.RepositoryRef, path string) (*inspection.Entry, error) {
	fc, _, _, err := a.gh.Repositories.GetContents(ctx, ref.Owner, ref.Repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get contents %s/%s/%s: %w", ref.Owner, ref.Repo, path, err)
	}
	if fc == nil {
		return nil, nil
	}
	e := entryFrom(fc)
	return &e, nil
}

func entryFrom(rc *gogithub.RepositoryContent) inspection.Entry {
	return inspection.Entry{
		Name:        rc.GetName(),
		Path:        rc.GetPath(),
		Size:        rc.GetSize(),
		Type:        nodeType(rc.GetType()),
		DownloadURL: rc.GetDownloadURL(),
		Content:     rc.Content,
		Encoding:    rc.GetEncoding(),
	}
}

// nodeType folds GitHub's entry types (file, dir, symlink, submodule) into
// the two the tree model carries; anything that is not a directory is
// treated as a file.
func nodeType(t string) string {
	if t == "dir" {
		return api.NodeTypeDir
	}
	return api.NodeTypeFile
}

// Provider builds a Host per request from the platform client factory.
type Provider struct {
	factory *platformgithub.ClientFactory
}

// NewProvider creates a Provider.
func NewProvider(factory *platformgithub.ClientFactory) *Provider {
	return &Provider{factory: factory}
}

// ServerAuthenticated reports whether GitHub App installation auth is configured.
func (p *Provider) ServerAuthenticated() bool {
	return p.factory.ServerAuthenticated()
}

// Host returns an Adapter authenticated with token, or with the server's
// App installation when token is empty and App auth is configured.
func (p *Provider) Host(token string) (inspection.Host, error) {
	if token != "" {
		return New(p.factory.TokenClient(token)), nil
	}
	if p.factory.ServerAuthenticated() {
		return New(p.factory.AppClient()), nil
	}
	return nil, inspection.InvalidCredentialError{}
}
