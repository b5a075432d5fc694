package inspection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

func TestFetchDecodesBase64Content(t *testing.T) {
	host := newInmemHost()
	host.set("docs/guide.md", "# Guide\n\nHello, 世界.")

	bus := newBus()
	_, events := bus.Subscribe()

	f := inspection.NewFetcher(bus, discard(), func(string, api.RepositoryRef, string, error) {})
	content := f.Fetch(context.Background(), host, testRef, "docs/guide.md")

	require.NotNil(t, content)
	assert.Equal(t, "# Guide\n\nHello, 世界.", *content)

	got := drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, api.EventFileFetchStarted, got[0].Kind)
	assert.Equal(t, "docs/guide.md", got[0].Payload["path"])
	assert.Equal(t, api.EventFileFetchCompleted, got[1].Kind)
	assert.Equal(t, true, got[1].Payload["success"])
}

func TestFetchDirectoryReturnsNil(t *testing.T) {
	host := newInmemHost()
	host.set("sub/b.md", "# B")

	bus := newBus()
	_, events := bus.Subscribe()

	f := inspection.NewFetcher(bus, discard(), func(string, api.RepositoryRef, string, error) {})
	content := f.Fetch(context.Background(), host, testRef, "sub")

	assert.Nil(t, content)

	got := drainEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, false, got[1].Payload["success"])
}

func TestFetchAbsorbsHostError(t *testing.T) {
	host := newInmemHost()
	host.failAt("secret.txt", errors.New("forbidden"))

	diag := &absorbed{}
	f := inspection.NewFetcher(newBus(), discard(), diag.diag)
	content := f.Fetch(context.Background(), host, testRef, "secret.txt")

	assert.Nil(t, content, "host failures degrade to an absent result")
	assert.Equal(t, []string{"get secret.txt"}, diag.list())
}

func TestFetchRejectsMalformedEncoding(t *testing.T) {
	bad := "%%% not base64 %%%"
	host := &fixedListingHost{listing: &inspection.Listing{File: &inspection.Entry{
		Name:     "blob.bin",
		Path:     "blob.bin",
		Type:     api.NodeTypeFile,
		Content:  &bad,
		Encoding: "base64",
	}}}

	diag := &absorbed{}
	f := inspection.NewFetcher(newBus(), discard(), diag.diag)
	content := f.Fetch(context.Background(), host, testRef, "blob.bin")

	assert.Nil(t, content)
	assert.Equal(t, []string{"decode blob.bin"}, diag.list())
}

func TestFetchPassesThroughUnencodedContent(t *testing.T) {
	raw := "plain text"
	host := &fixedListingHost{listing: &inspection.Listing{File: &inspection.Entry{
		Name:    "notes.txt",
		Path:    "notes.txt",
		Type:    api.NodeTypeFile,
		Content: &raw,
	}}}

	f := inspection.NewFetcher(newBus(), discard(), func(string, api.RepositoryRef, string, error) {})
	content := f.Fetch(context.Background(), host, testRef, "notes.txt")

	require.NotNil(t, content)
	assert.Equal(t, "plain text", *content)
}
