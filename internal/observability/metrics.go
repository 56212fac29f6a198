// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket sessions.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ripple_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationsPersisted counts stored notifications by kind.
	NotificationsPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_persisted_total",
		Help: "Total number of notifications written to storage by kind",
	}, []string{"kind"})

	// NotificationsDelivered counts realtime notification deliveries by outcome.
	// In Redis-less mode the outcome is "sent" when at least one local session
	// received the event and "offline" when the recipient had no sessions.
	// With Redis the publish fans out to every instance, so outcome is
	// "published" regardless of presence. "dropped" covers encode and publish
	// failures on either path.
	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_delivered_total",
		Help: "Total number of realtime notification delivery attempts by outcome",
	}, []string{"outcome"})

	// FeedRequestsTotal counts feed page loads, split by first page vs cursor continuation.
	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_feed_requests_total",
		Help: "Total number of feed page requests by page type",
	}, []string{"page"})
)

// ObserveQuery records the latency of a database statement. The GORM logger
// calls this from its Trace hook.
func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
