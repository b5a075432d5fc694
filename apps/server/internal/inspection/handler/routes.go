// Package handler exposes the inspection tools over HTTP: a stateless
// per-call endpoint and a persistent SSE event-subscription endpoint.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection"
	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/inspection/broadcast"
)

// Handler translates HTTP requests into calls on the inspection.Service and
// streams broadcast progress events to connected observers.
type Handler struct {
	svc       *inspection.Service
	bus       *broadcast.Broadcaster
	log       *slog.Logger
	keepAlive time.Duration
	metrics   *metrics
}

// RegisterRoutes mounts the tool API onto the given Gin engine. keepAlive is
// the interval of the no-payload ping sent to idle SSE observers.
func RegisterRoutes(r *gin.Engine, svc *inspection.Service, bus *broadcast.Broadcaster, log *slog.Logger, keepAlive time.Duration) {
	h := &Handler{svc: svc, bus: bus, log: log, keepAlive: keepAlive, metrics: newMetrics()}

	r.POST("/messages", h.ToolCall)
	r.GET("/sse", h.Events)

	// Only the two logical endpoints exist; everything else is not found.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
