// Package api holds the wire types shared between the inspection server, the
// watcher CLI, and tests: tool-call requests, response payloads, and progress
// events. Tool responses are plain data — an operation that fails still
// returns a payload (ErrorPayload), never a transport-level fault.
package api

import (
	"encoding/json"
	"time"
)

// Node types used in TreeNode.Type, matching the GitHub contents API.
const (
	NodeTypeFile = "file"
	NodeTypeDir  = "dir"
)

// RepositoryRef identifies a repository. Both fields are required.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// TreeNode is a file or directory descriptor produced by traversal.
// Type tags the variant: files carry Size and DownloadURL, directories
// carry Children. Children order follows the host's listing order.
type TreeNode struct {
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Size        int        `json:"size,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	Children    []TreeNode `json:"children,omitempty"`
}

// ContentRecord pairs a file path with its fetched content. Content is nil
// exactly when retrieval failed or the path was not a plain file.
type ContentRecord struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
}

// RepositoryStructure is the success payload of the get_repository_structure tool.
// Files is present only when content collection was requested and ran.
type RepositoryStructure struct {
	Repository RepositoryRef   `json:"repository"`
	Structure  []TreeNode      `json:"structure"`
	Files      []ContentRecord `json:"files,omitempty"`
}

// FileContentPayload is the success payload of the get_file_content tool.
type FileContentPayload struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ErrorPayload is the failure shape returned by every tool operation.
type ErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StructureRequest carries the arguments of the get_repository_structure tool.
type StructureRequest struct {
	Credential     string   `json:"credential"`
	Owner          string   `json:"owner"`
	Repo           string   `json:"repo"`
	IncludeContent bool     `json:"includeContent"`
	Extensions     []string `json:"extensions"`
}

// FileContentRequest carries the arguments of the get_file_content tool.
type FileContentRequest struct {
	Credential string `json:"credential"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	Path       string `json:"path"`
}

// Tool names accepted on the per-call endpoint.
const (
	ToolRepositoryStructure = "get_repository_structure"
	ToolFileContent         = "get_file_content"
)

// ToolCallRequest is the body of a stateless tool invocation. Arguments is
// decoded per tool into StructureRequest or FileContentRequest.
type ToolCallRequest struct {
	Tool      string          `json:"tool" binding:"required"`
	Arguments json.RawMessage `json:"arguments"`
}

// Progress event kinds. Each serializes over SSE as a named event whose data
// is the JSON payload.
const (
	EventRepoFetchStarted   = "repo_fetch_started"
	EventRepoFetchCompleted = "repo_fetch_completed"
	EventRepoFetchError     = "repo_fetch_error"
	EventFileFetchStarted   = "file_fetch_started"
	EventFileFetchCompleted = "file_fetch_completed"
	EventFileFetchError     = "file_fetch_error"
)

// ProgressEvent is an ephemeral progress notification. Events are broadcast
// at emission time only — an observer that connects later misses them.
type ProgressEvent struct {
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewProgressEvent stamps an event with the current UTC time and mirrors the
// timestamp into the payload, which is what observers actually receive.
func NewProgressEvent(kind string, payload map[string]any) ProgressEvent {
	now := time.Now().UTC()
	if payload == nil {
		payload = map[string]any{}
	}
	payload["timestamp"] = now.Format(time.RFC3339Nano)
	return ProgressEvent{Kind: kind, Payload: payload, Timestamp: now}
}
