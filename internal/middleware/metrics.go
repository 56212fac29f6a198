package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ActiveWebSockets tracks websocket sessions accepted by the HTTP handler on
// this instance. The hub keeps its own registry-level gauge; this one counts
// upgrades that reached the handler, including ones the hub later rejected.
var ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ripple_active_websockets",
	Help: "Number of currently open WebSocket connections",
})

// InitMetrics creates the per-route HTTP metrics collector.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the handler that records request count, latency
// and in-flight gauges for every route.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
