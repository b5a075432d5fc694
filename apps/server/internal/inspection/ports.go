package inspection

import (
	"context"

	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// Entry is a single item as reported by the repository host. Content, when
// present, is encoded as declared by Encoding ("base64" for the GitHub
// contents API).
type Entry struct {
	Name        string
	Path        string
	Size        int
	Type        string // api.NodeTypeFile or api.NodeTypeDir
	DownloadURL string
	Content     *string
	Encoding    string
}

// Listing is the tagged result of listing a path. Exactly one variant is
// set: Dir when the path was a directory, File when the path was itself a
// file. Dir order is the host's listing order, not independently sorted.
type Listing struct {
	Dir  []Entry
	File *Entry
}

// Host is the port over the external repository hosting API.
type Host interface {
	// ListEntries lists the given path; "" means the repository root.
	ListEntries(ctx context.Context, ref api.RepositoryRef, path string) (*Listing, error)
	// GetEntry returns the entry at path with its inline content when the
	// host provides one. A nil entry with nil error means the path exists
	// but is not a plain file (e.g. a directory).
	GetEntry(ctx context.Context, ref api.RepositoryRef, path string) (*Entry, error)
}

// HostProvider turns a per-request credential into an authenticated Host.
type HostProvider interface {
	// ServerAuthenticated reports whether the server holds its own
	// credential (GitHub App installation), allowing requests to omit one.
	ServerAuthenticated() bool
	// Host returns a Host authenticated with token, falling back to the
	// server-level credential when token is empty. Returns
	// InvalidCredentialError when neither is available.
	Host(token string) (Host, error)
}

// Diagnostic receives host failures that traversal and content fetching
// absorb instead of propagating, so tests and operators can observe them.
type Diagnostic func(op string, ref api.RepositoryRef, path string, err error)
