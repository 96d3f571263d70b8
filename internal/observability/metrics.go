package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glimpse_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glimpse_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationsDelivered counts notifications pushed to connected clients by type.
	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_notifications_delivered_total",
		Help: "Total number of notifications delivered over WebSocket by type",
	}, []string{"type"})

	// IdentitySyncTotal counts identity sync outcomes.
	IdentitySyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_identity_sync_total",
		Help: "Total number of identity sync operations by outcome",
	}, []string{"outcome"})

	// WebhookEventsTotal counts processed identity webhook events by type and outcome.
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_webhook_events_total",
		Help: "Total number of identity webhook events by type and outcome",
	}, []string{"event_type", "outcome"})

	// MediaUploadsTotal counts object storage uploads by kind.
	MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_media_uploads_total",
		Help: "Total number of media uploads by kind",
	}, []string{"kind"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
