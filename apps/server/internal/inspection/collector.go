package inspection

import (
	"context"
	"strings"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// ExtensionWildcard matches every file regardless of extension.
const ExtensionWildcard = "*"

// Collector walks a traversal result depth-first and fetches content for
// files whose extension matches a filter set.
type Collector struct {
	fetcher *Fetcher
	bus     *broadcast.Broadcaster
}

// NewCollector creates a Collector delegating retrieval to fetcher.
func NewCollector(fetcher *Fetcher, bus *broadcast.Broadcaster) *Collector {
	return &Collector{fetcher: fetcher, bus: bus}
}

// Collect walks tree in structure order and returns one ContentRecord per
// matching file, whether or not its content could be fetched. Matching is
// case-insensitive on the substring after the file name's last dot; the
// wildcard "*" matches every file. Directories never produce records.
//
// Each matching file gets its own file_fetch_started/completed pair here on
// top of the pair the Fetcher emits — observers see both.
func (c *Collector) Collect(ctx context.Context, host Host, ref api.RepositoryRef, tree []api.TreeNode, extensions []string) []api.ContentRecord {
	filters := make(map[string]bool, len(extensions))
	wildcard := false
	for _, ext := range extensions {
		if ext == ExtensionWildcard {
			wildcard = true
			continue
		}
		filters[strings.ToLower(ext)] = true
	}

	var records []api.ContentRecord
	c.walk(ctx, host, ref, tree, filters, wildcard, &records)
	return records
}

func (c *Collector) walk(ctx context.Context, host Host, ref api.RepositoryRef, nodes []api.TreeNode, filters map[string]bool, wildcard bool, records *[]api.ContentRecord) {
	for _, node := range nodes {
		if node.Type == api.NodeTypeDir {
			c.walk(ctx, host, ref, node.Children, filters, wildcard, records)
			continue
		}
		if !wildcard && !filters[extensionOf(node.Name)] {
			continue
		}

		c.bus.Publish(api.NewProgressEvent(api.EventFileFetchStarted, map[string]any{"path": node.Path}))
		content := c.fetcher.Fetch(ctx, host, ref, node.Path)
		c.bus.Publish(api.NewProgressEvent(api.EventFileFetchCompleted, map[string]any{
			"path":    node.Path,
			"success": content != nil,
		}))

		*records = append(*records, api.ContentRecord{Path: node.Path, Content: content})
	}
}

// extensionOf returns the lowercased substring after the last dot of name,
// or "" when name has no dot.
func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
