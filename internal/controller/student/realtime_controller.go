package student

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ashwinsr/placement-portal/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RealtimeController struct {
	hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// StreamUpdates godoc
// @Summary (Student) Server-sent event stream of portal updates
// @Description Long-lived SSE connection. Emits test_published events so available-test lists refresh without polling. Purely informational; availability is always re-checked server-side.
// @Tags Student - Realtime
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /realtime/updates [get]
func (c *RealtimeController) StreamUpdates(ctx *gin.Context) {
	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	id, events := c.hub.Subscribe()
	// Pruning is tied to connection close, never a timeout; the request
	// context fires as soon as the client goes away.
	defer c.hub.Unsubscribe(id)

	done := ctx.Request.Context().Done()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Str("type", event.Type).Msg("StreamUpdates: failed to encode event")
				return true
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			return true
		}
	})
}
