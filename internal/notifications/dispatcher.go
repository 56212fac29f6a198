package notifications

import (
	"context"
	"fmt"
	"log"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// Ref points at the object a notification is about.
type Ref struct {
	PostID    *uint
	CommentID *uint
}

// Dispatcher persists notifications and pushes them to live sessions.
// Persistence is authoritative; push delivery is best effort and its
// failures never surface to the caller.
type Dispatcher struct {
	repo     repository.NotificationRepository
	hub      *Hub
	notifier *Notifier
}

// NewDispatcher creates a Dispatcher. notifier may be disabled (nil Redis),
// in which case delivery goes straight to the local hub.
func NewDispatcher(repo repository.NotificationRepository, hub *Hub, notifier *Notifier) *Dispatcher {
	return &Dispatcher{repo: repo, hub: hub, notifier: notifier}
}

// Notify records an interaction and pushes it to the recipient's sessions.
// Actors never notify themselves. If persistence fails, no push happens and
// the error is returned.
func (d *Dispatcher) Notify(ctx context.Context, recipientID, actorID uint, kind models.NotificationKind, ref Ref) error {
	if recipientID == actorID {
		return nil
	}
	if !kind.Valid() {
		return models.NewValidationError(fmt.Sprintf("Unknown notification kind: %q", kind))
	}

	ctx, span := observability.GetTraceLayer().TraceNotificationDispatch(ctx, string(kind))
	defer span.End()

	notification := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Kind:        kind,
		PostID:      ref.PostID,
		CommentID:   ref.CommentID,
	}

	if err := d.repo.Create(ctx, notification); err != nil {
		span.RecordError(err)
		return err
	}
	observability.NotificationsPersisted.WithLabelValues(string(kind)).Inc()

	d.push(ctx, notification)
	return nil
}

// push delivers a persisted notification to live sessions. When Redis is
// available the payload is published there and the pattern subscriber fans
// it out to every instance, including this one. Without Redis delivery is
// local only.
func (d *Dispatcher) push(ctx context.Context, n *models.Notification) {
	payload, err := NotificationEvent(n)
	if err != nil {
		log.Printf("failed to encode notification %d: %v", n.ID, err)
		observability.NotificationsDelivered.WithLabelValues("dropped").Inc()
		return
	}

	if d.notifier.Enabled() {
		if err := d.notifier.PublishUser(ctx, n.RecipientID, payload); err != nil {
			log.Printf("failed to publish notification %d: %v", n.ID, err)
			observability.NotificationsDelivered.WithLabelValues("dropped").Inc()
			return
		}
		// Sessions may live on any instance; this process cannot tell
		// "sent" from "offline", only that the publish landed.
		observability.NotificationsDelivered.WithLabelValues("published").Inc()
		return
	}

	if !d.hub.IsOnline(n.RecipientID) {
		observability.NotificationsDelivered.WithLabelValues("offline").Inc()
		return
	}
	d.hub.Broadcast(n.RecipientID, payload)
	observability.NotificationsDelivered.WithLabelValues("sent").Inc()
}
