package handler_test

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/handler"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixtureHost serves a two-file repository: README.md at the root and
// docs/guide.md one level down.
type fixtureHost struct{}

var fixtureFiles = map[string]string{
	"README.md":     "# readme",
	"docs/guide.md": "# guide",
}

func (fixtureHost) ListEntries(_ context.Context, _ api.RepositoryRef, path string) (*inspection.Listing, error) {
	if content, ok := fixtureFiles[path]; ok {
		e := fixtureEntry(path, content)
		return &inspection.Listing{File: &e}, nil
	}
	switch path {
	case "":
		readme := fixtureEntry("README.md", fixtureFiles["README.md"])
		return &inspection.Listing{Dir: []inspection.Entry{
			readme,
			{Name: "docs", Path: "docs", Type: api.NodeTypeDir},
		}}, nil
	case "docs":
		guide := fixtureEntry("docs/guide.md", fixtureFiles["docs/guide.md"])
		return &inspection.Listing{Dir: []inspection.Entry{guide}}, nil
	}
	return &inspection.Listing{}, nil
}

func (fixtureHost) GetEntry(_ context.Context, _ api.RepositoryRef, path string) (*inspection.Entry, error) {
	content, ok := fixtureFiles[path]
	if !ok {
		return nil, nil
	}
	e := fixtureEntry(path, content)
	return &e, nil
}

func fixtureEntry(path, content string) inspection.Entry {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	return inspection.Entry{
		Name:     name,
		Path:     path,
		Size:     len(content),
		Type:     api.NodeTypeFile,
		Content:  &encoded,
		Encoding: "base64",
	}
}

type fixtureProvider struct{}

func (fixtureProvider) ServerAuthenticated() bool { return false }

func (fixtureProvider) Host(token string) (inspection.Host, error) {
	if token == "" {
		return nil, inspection.InvalidCredentialError{}
	}
	return fixtureHost{}, nil
}

// newRouter wires a full engine around the fixture repository.
func newRouter(keepAlive time.Duration) (*gin.Engine, *broadcast.Broadcaster) {
	gin.SetMode(gin.TestMode)

	log := discard()
	bus := broadcast.NewWithBuffer(log, 64)
	svc := inspection.NewService(fixtureProvider{}, bus, log)

	r := gin.New()
	handler.RegisterRoutes(r, svc, bus, log, keepAlive)
	return r, bus
}
