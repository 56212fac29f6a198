package service

import (
	"context"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/notifications"
)

// Dispatcher records and pushes notifications for user interactions.
type Dispatcher interface {
	Notify(ctx context.Context, recipientID, actorID uint, kind models.NotificationKind, ref notifications.Ref) error
}

// dispatch fires a notification without failing the triggering operation.
// The like or comment has already committed; a lost notification is logged,
// not surfaced.
func dispatch(ctx context.Context, d Dispatcher, recipientID, actorID uint, kind models.NotificationKind, ref notifications.Ref) {
	if d == nil {
		return
	}
	if err := d.Notify(ctx, recipientID, actorID, kind, ref); err != nil {
		middleware.Logger.ErrorContext(ctx, "notification dispatch failed",
			"recipient_id", recipientID,
			"actor_id", actorID,
			"kind", string(kind),
			"error", err,
		)
	}
}
