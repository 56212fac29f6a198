// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationKind identifies the interaction that produced a notification.
type NotificationKind string

const (
	// NotificationKindLike indicates someone liked the recipient's post.
	NotificationKindLike NotificationKind = "like"
	// NotificationKindComment indicates someone commented on the recipient's post.
	NotificationKindComment NotificationKind = "comment"
)

// Valid reports whether k is a known notification kind.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationKindLike, NotificationKindComment:
		return true
	}
	return false
}

// Notification represents a stored notification for a user.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Kind        NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	PostID      *uint            `json:"post_id,omitempty"`
	CommentID   *uint            `json:"comment_id,omitempty"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
	Actor     User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
