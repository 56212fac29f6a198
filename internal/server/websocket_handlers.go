package server

import (
	"context"

	"ripple/internal/middleware"
	"ripple/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws. Each connection is registered with
// the notification hub for the authenticated user; a user may hold several
// concurrent sessions (one per tab or device).
func (s *Server) WebsocketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		userID := c.Locals("userID").(uint)

		return websocket.New(func(conn *websocket.Conn) {
			client, err := s.hub.Register(userID, conn)
			if err != nil {
				_ = conn.WriteJSON(fiber.Map{"type": "error", "payload": fiber.Map{"message": err.Error()}})
				_ = conn.Close()
				return
			}

			middleware.ActiveWebSockets.Inc()
			defer func() {
				middleware.ActiveWebSockets.Dec()
				s.hub.UnregisterClient(client)
			}()

			go client.WritePump()

			// Push a snapshot of the unread count so the client can render
			// its badge without an extra REST round trip.
			if count, err := s.notificationService.UnreadCount(context.Background(), userID); err == nil {
				if event, err := notifications.UnreadCountEvent(count); err == nil {
					client.TrySend([]byte(event))
				}
			}

			client.ReadPump()
		})(c)
	}
}
