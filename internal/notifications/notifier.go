package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "notifications:user:"
	broadcastChannel  = "notifications:broadcast"
	subscribePattern  = "notifications:*"
)

// Notifier publishes notification payloads over Redis pub/sub so that every
// server instance can deliver to its locally connected sessions. A nil Redis
// client disables publishing; callers fall back to local broadcast.
type Notifier struct {
	redis *redis.Client
}

// NewNotifier creates a Notifier. client may be nil when Redis is unavailable.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{redis: client}
}

// Enabled reports whether cross-instance publishing is available.
func (n *Notifier) Enabled() bool {
	return n != nil && n.redis != nil
}

// UserChannel returns the pub/sub channel name for a user's notifications.
func UserChannel(userID uint) string {
	return fmt.Sprintf("%s%d", userChannelPrefix, userID)
}

// PublishUser publishes payload to a single user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if !n.Enabled() {
		return nil
	}
	return n.redis.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast publishes payload to the broadcast channel.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if !n.Enabled() {
		return nil
	}
	return n.redis.Publish(ctx, broadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to all notification channels and invokes
// handler for each message until ctx is cancelled. It reconnects with backoff
// after transient failures.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, handler func(channel, payload string)) error {
	if !n.Enabled() {
		return nil
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("notification subscriber panic: %v", r)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			pubsub := n.redis.PSubscribe(ctx, subscribePattern)
			ch := pubsub.Channel()

		recv:
			for {
				select {
				case <-ctx.Done():
					_ = pubsub.Close()
					return
				case msg, ok := <-ch:
					if !ok {
						break recv
					}
					handler(msg.Channel, msg.Payload)
				}
			}

			_ = pubsub.Close()
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	return nil
}
