// Package middleware provides the observability layer for mathfield servers.
//
// # Prometheus
//
// Metrics collects field lifecycle counts and HTTP request metrics. It
// implements mathfield.Observer, so it can be handed straight to a field:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	f := mathfield.New(mathfield.WithMetrics(m))
//
//	r := chi.NewRouter()
//	r.Use(m.HTTP)
//	r.Handle("/metrics", promhttp.Handler())
//
// Metrics collected (with the default namespace "mathfield"):
//   - mathfield_options_applied_total: SetOptions calls made on widgets
//   - mathfield_options_skipped_total: commits whose options were unchanged
//   - mathfield_listeners_active: native listeners currently attached
//   - mathfield_events_total: widget events forwarded to callbacks, by event
//   - mathfield_active_sessions: open WebSocket sessions
//   - mathfield_websocket_errors_total: WebSocket errors, by type
//   - mathfield_http_requests_total: HTTP requests, by route and status
//   - mathfield_http_request_duration_seconds: HTTP latency, by route
//
// # OpenTelemetry
//
// Tracing wraps HTTP handlers in server spans using the global tracer
// provider. Configure the provider in main before starting the server.
package middleware
