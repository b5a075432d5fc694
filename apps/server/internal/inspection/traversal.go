package inspection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// Traverser recursively walks a repository's directory tree via a Host.
// Recursion is sequential in listing order and unbounded in depth.
type Traverser struct {
	bus  *broadcast.Broadcaster
	diag Diagnostic
	log  *slog.Logger
}

// NewTraverser creates a Traverser. diag receives absorbed host failures.
func NewTraverser(bus *broadcast.Broadcaster, log *slog.Logger, diag Diagnostic) *Traverser {
	return &Traverser{bus: bus, diag: diag, log: log}
}

// Run traverses the repository from its root. It emits repo_fetch_started
// before the first host call and repo_fetch_completed (with the transitive
// file count) after the walk returns, even when branches below the root were
// truncated by absorbed failures. A host failure at the root itself
// propagates; callers emit repo_fetch_error and shape the error payload.
func (t *Traverser) Run(ctx context.Context, host Host, ref api.RepositoryRef) ([]api.TreeNode, error) {
	t.bus.Publish(api.NewProgressEvent(api.EventRepoFetchStarted, map[string]any{
		"owner": ref.Owner,
		"repo":  ref.Repo,
	}))

	listing, err := host.ListEntries(ctx, ref, "")
	if err != nil {
		return nil, fmt.Errorf("list %s/%s root: %w", ref.Owner, ref.Repo, err)
	}
	nodes := t.fromListing(ctx, host, ref, listing)

	t.bus.Publish(api.NewProgressEvent(api.EventRepoFetchCompleted, map[string]any{
		"owner":     ref.Owner,
		"repo":      ref.Repo,
		"fileCount": CountFiles(nodes),
	}))
	return nodes, nil
}

// fromListing turns one listing level into tree nodes, recursing into
// directory entries. A single-file listing yields a one-element sequence.
func (t *Traverser) fromListing(ctx context.Context, host Host, ref api.RepositoryRef, listing *Listing) []api.TreeNode {
	if listing.File != nil {
		return []api.TreeNode{fileNode(*listing.File)}
	}

	nodes := make([]api.TreeNode, 0, len(listing.Dir))
	for _, e := range listing.Dir {
		if e.Type == api.NodeTypeDir {
			nodes = append(nodes, api.TreeNode{
				Type:     api.NodeTypeDir,
				Name:     e.Name,
				Path:     e.Path,
				Children: t.walk(ctx, host, ref, e.Path),
			})
			continue
		}
		nodes = append(nodes, fileNode(e))
	}
	return nodes
}

// walk lists path and recurses into it. Any failure — including a cancelled
// context — truncates this branch to an empty child list instead of aborting
// the traversal; the failure is reported through the diagnostic sink only.
func (t *Traverser) walk(ctx context.Context, host Host, ref api.RepositoryRef, path string) []api.TreeNode {
	if err := ctx.Err(); err != nil {
		t.diag("list", ref, path, err)
		return []api.TreeNode{}
	}
	listing, err := host.ListEntries(ctx, ref, path)
	if err != nil {
		t.diag("list", ref, path, err)
		return []api.TreeNode{}
	}
	return t.fromListing(ctx, host, ref, listing)
}

func fileNode(e Entry) api.TreeNode {
	return api.TreeNode{
		Type:        api.NodeTypeFile,
		Name:        e.Name,
		Path:        e.Path,
		Size:        e.Size,
		DownloadURL: e.DownloadURL,
	}
}

// CountFiles returns the number of file nodes in the forest, transitively.
func CountFiles(nodes []api.TreeNode) int {
	n := 0
	for _, node := range nodes {
		if node.Type == api.NodeTypeFile {
			n++
			continue
		}
		n += CountFiles(node.Children)
	}
	return n
}
