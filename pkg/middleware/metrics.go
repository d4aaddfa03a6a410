package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/mathfield/pkg/mathfield"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "mathfield").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "mathfield",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors. Create one per registry.
type Metrics struct {
	optionsApplied  prometheus.Counter
	optionsSkipped  prometheus.Counter
	listenersActive prometheus.Gauge
	eventsTotal     *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	wsErrors        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		optionsApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "options_applied_total",
			Help:        "Total number of SetOptions calls made on widgets",
			ConstLabels: config.ConstLabels,
		}),

		optionsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "options_skipped_total",
			Help:        "Total number of commits whose options were structurally unchanged",
			ConstLabels: config.ConstLabels,
		}),

		listenersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_active",
			Help:        "Number of native listeners attached to widgets",
			ConstLabels: config.ConstLabels,
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of widget events forwarded to callbacks",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// OptionsApplied implements mathfield.Observer.
func (m *Metrics) OptionsApplied() { m.optionsApplied.Inc() }

// OptionsSkipped implements mathfield.Observer.
func (m *Metrics) OptionsSkipped() { m.optionsSkipped.Inc() }

// ListenersAttached implements mathfield.Observer.
func (m *Metrics) ListenersAttached(n int) { m.listenersActive.Add(float64(n)) }

// ListenersDetached implements mathfield.Observer.
func (m *Metrics) ListenersDetached(n int) { m.listenersActive.Sub(float64(n)) }

// EventDispatched implements mathfield.Observer.
func (m *Metrics) EventDispatched(event string) { m.eventsTotal.WithLabelValues(event).Inc() }

// SessionOpened records a new WebSocket session.
func (m *Metrics) SessionOpened() { m.activeSessions.Inc() }

// SessionClosed records a closed WebSocket session.
func (m *Metrics) SessionClosed() { m.activeSessions.Dec() }

// WebSocketError records a WebSocket error under a low-cardinality type.
func (m *Metrics) WebSocketError(err error) {
	if err == nil {
		return
	}
	m.wsErrors.WithLabelValues(categorizeError(err)).Inc()
}

// HTTP is chi-compatible middleware recording request count and latency.
// Routes are labelled by their chi pattern to keep cardinality bounded.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout"), strings.Contains(s, "deadline"):
		return "timeout"
	case strings.Contains(s, "close"):
		return "closed"
	case strings.Contains(s, "decode"), strings.Contains(s, "invalid"):
		return "protocol"
	case strings.Contains(s, "upgrade"), strings.Contains(s, "handshake"):
		return "handshake"
	default:
		return "internal"
	}
}

var _ mathfield.Observer = (*Metrics)(nil)
