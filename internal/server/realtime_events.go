package server

import (
	"context"
	"encoding/json"

	"ripple/internal/middleware"
	"ripple/internal/observability"
)

// Broadcast event types pushed to every connected WebSocket client.
const (
	EventPostCreated = "post_created"
)

// publishBroadcastEvent fans an event out to all connected clients. When
// Redis is available the event goes through the pattern subscriber so every
// instance delivers it; otherwise delivery is local to this process.
func (s *Server) publishBroadcastEvent(eventType string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		middleware.Logger.Error("failed to encode broadcast event", "type", eventType, "error", err)
		return
	}

	observability.WebSocketEventsTotal.WithLabelValues(eventType).Inc()

	if s.notifier.Enabled() {
		ctx := s.shutdownCtx
		if ctx == nil {
			ctx = context.Background()
		}
		if err := s.notifier.PublishBroadcast(ctx, string(message)); err != nil {
			middleware.Logger.Error("failed to publish broadcast event", "type", eventType, "error", err)
		}
		return
	}

	s.hub.BroadcastAll(string(message))
}
