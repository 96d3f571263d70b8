package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures observed by the client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "glimpse_redis_errors_total",
	Help: "Total number of Redis command errors by command name",
}, []string{"command"})

// ActiveWebSockets is the gauge of currently open WebSocket connections.
var ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "glimpse_active_websockets",
	Help: "Number of currently open WebSocket connections",
})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
