package notifications

import (
	"encoding/json"
	"fmt"

	"ripple/internal/models"
)

// Event is the envelope sent to websocket clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NotificationEvent serializes a stored notification into a websocket event.
func NotificationEvent(n *models.Notification) (string, error) {
	if !n.Kind.Valid() {
		return "", fmt.Errorf("unknown notification kind: %q", n.Kind)
	}
	data, err := json.Marshal(Event{Type: "notification", Payload: n})
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification event: %w", err)
	}
	return string(data), nil
}

// UnreadCountEvent serializes an unread-counter update for a recipient.
func UnreadCountEvent(count int64) (string, error) {
	data, err := json.Marshal(Event{
		Type:    "unread_count",
		Payload: map[string]int64{"count": count},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal unread count event: %w", err)
	}
	return string(data), nil
}
