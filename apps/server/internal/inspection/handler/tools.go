package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// ToolCall handles POST /messages. The response is always 200 with a JSON
// payload — tool failures are data (api.ErrorPayload), not HTTP faults.
// Only a malformed envelope gets a 400.
func (h *Handler) ToolCall(c *gin.Context) {
	var req api.ToolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := h.dispatch(c.Request.Context(), req)
	h.metrics.recordToolCall(c.Request.Context(), req.Tool, payload)
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) dispatch(ctx context.Context, req api.ToolCallRequest) any {
	switch req.Tool {
	case api.ToolRepositoryStructure:
		var args api.StructureRequest
		if err := json.Unmarshal(req.Arguments, &args); err != nil {
			return badArguments(req.Tool, err)
		}
		return h.svc.RepositoryStructure(ctx, args)

	case api.ToolFileContent:
		var args api.FileContentRequest
		if err := json.Unmarshal(req.Arguments, &args); err != nil {
			return badArguments(req.Tool, err)
		}
		return h.svc.FileContent(ctx, args)

	default:
		return &api.ErrorPayload{
			Error:   inspection.ErrCodeInvalidRequest,
			Details: fmt.Sprintf("unknown tool %q", req.Tool),
		}
	}
}

func badArguments(tool string, err error) *api.ErrorPayload {
	return &api.ErrorPayload{
		Error:   inspection.ErrCodeInvalidRequest,
		Details: fmt.Sprintf("arguments for %s: %v", tool, err),
	}
}
