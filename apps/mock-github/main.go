// mock-github is a local stand-in for the GitHub contents API. Point the
// inspection server at it with GITHUB_BASE_URL to develop without real
// credentials; any non-empty token is accepted.
package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/erlanggapratamaP/elang-mcp-server/pkg/logging"
)

// contentEntry mirrors the GitHub contents API object shape that go-github
// decodes: the same struct serves directory listings and single files.
type contentEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int    `json:"size,omitempty"`
	Encoding    string `json:"encoding,omitempty"`
	Content     string `json:"content,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// store holds seeded repository files keyed by "owner/repo".
type store struct {
	mu      sync.RWMutex
	files   map[string]map[string]string
	baseURL string
}

func newStore(baseURL string) *store {
	return &store{files: make(map[string]map[string]string), baseURL: baseURL}
}

func (s *store) seed(owner, repo, path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := owner + "/" + repo
	if s.files[key] == nil {
		s.files[key] = make(map[string]string)
	}
	s.files[key][path] = content
}

func (s *store) file(owner, repo, path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[owner+"/"+repo][path]
	return content, ok
}

// listDir returns the immediate children of dirPath, the way GitHub's
// GET /repos/:owner/:repo/contents/:path answers for a directory.
func (s *store) listDir(owner, repo, dirPath string) []contentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := s.files[owner+"/"+repo]
	if files == nil {
		return nil
	}

	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []contentEntry
	for filePath, content := range files {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		rest := filePath[len(prefix):]
		idx := strings.Index(rest, "/")
		if idx >= 0 {
			name := rest[:idx]
			if !seen[name] {
				seen[name] = true
				entries = append(entries, contentEntry{
					Type: "dir",
					Name: name,
					Path: prefix + name,
				})
			}
			continue
		}
		if !seen[rest] {
			seen[rest] = true
			entries = append(entries, s.fileEntry(owner, repo, filePath, content, false))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (s *store) fileEntry(owner, repo, path, content string, inline bool) contentEntry {
	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	e := contentEntry{
		Type:        "file",
		Name:        name,
		Path:        path,
		Size:        len(content),
		DownloadURL: fmt.Sprintf("%s/raw/%s/%s/%s", s.baseURL, owner, repo, path),
	}
	if inline {
		e.Encoding = "base64"
		e.Content = base64.StdEncoding.EncodeToString([]byte(content))
	}
	return e
}

func main() {
	log := logging.New()

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	s := newStore("http://localhost:" + port)
	seedRepos(s)
	log.Info("seeded repositories", "repos", len(s.files))

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Contents endpoint: a single file object for exact path matches, a
	// directory listing array otherwise.
	r.GET("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		if content, ok := s.file(owner, repo, path); ok {
			c.JSON(http.StatusOK, s.fileEntry(owner, repo, path, content, true))
			return
		}
		if entries := s.listDir(owner, repo, path); entries != nil {
			c.JSON(http.StatusOK, entries)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("path %q not found in %s/%s", path, owner, repo),
		})
	})

	r.GET("/raw/:owner/:repo/*path", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		content, ok := s.file(owner, repo, path)
		if !ok {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.String(http.StatusOK, content)
	})

	log.Info("mock-github starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
