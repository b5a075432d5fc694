package handler

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// pingEvent is the no-payload idle signal that keeps the transport alive.
const pingEvent = "ping"

// Events handles GET /sse. It subscribes an observer, relays every broadcast
// progress event as a named SSE event with a JSON data payload, and sends a
// ping on the keep-alive interval. The observer is removed when the client
// goes away; events published before the subscription are not replayed.
func (h *Handler) Events(c *gin.Context) {
	id, ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	h.metrics.observerConnected(c.Request.Context())
	defer h.metrics.observerDisconnected(c.Request.Context())
	h.log.Info("observer connected", "observerId", id)
	defer h.log.Info("observer disconnected", "observerId", id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Flush the headers now so clients see the stream open before the first
	// event or ping is due.
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev.Payload)
			if err != nil {
				h.log.Error("failed to serialize event", "kind", ev.Kind, "error", err)
				return true
			}
			return sse.Encode(w, sse.Event{Event: ev.Kind, Data: string(data)}) == nil
		case <-ticker.C:
			return sse.Encode(w, sse.Event{Event: pingEvent, Data: ""}) == nil
		case <-done:
			return false
		}
	})
}
