package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	mferrors "github.com/vango-dev/mathfield/internal/errors"
	"github.com/vango-dev/mathfield/pkg/assets"
	"github.com/vango-dev/mathfield/pkg/middleware"
	"github.com/vango-dev/mathfield/pkg/protocol"
	"github.com/vango-dev/mathfield/pkg/remote"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

const (
	// AssetPath is the mount point of the runtime and session endpoint.
	AssetPath = "/_mathfield/"

	// RuntimeName is the logical name of the browser runtime.
	RuntimeName = "mathfield.js"
)

// PropsFunc returns the props for the field mounted under id.
type PropsFunc func(id string) vdom.Props

// Server serves the page, the runtime and field sessions.
type Server struct {
	config   Config
	router   chi.Router
	upgrader websocket.Upgrader

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	tracer   trace.Tracer
	resolver assets.Resolver
	props    PropsFunc
	fields   []string

	mu         sync.Mutex
	sessions   map[*remote.Session]struct{}
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry sets the Prometheus registry metrics are registered with
// and served from.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Server) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithTracer overrides the tracer used when tracing is enabled.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithResolver sets how the page resolves the runtime URL, e.g. from a
// published manifest.
func WithResolver(r assets.Resolver) Option {
	return func(s *Server) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithProps sets the props source for mounted fields.
func WithProps(fn PropsFunc) Option {
	return func(s *Server) {
		if fn != nil {
			s.props = fn
		}
	}
}

// WithFields sets the field ids rendered on the page.
func WithFields(ids ...string) Option {
	return func(s *Server) {
		if len(ids) > 0 {
			s.fields = ids
		}
	}
}

// New builds a server.
func New(cfg Config, opts ...Option) *Server {
	cfg.fillDefaults()
	s := &Server{
		config:   cfg,
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
		fields:   []string{"f1"},
		sessions: make(map[*remote.Session]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	if s.resolver == nil {
		s.resolver = assets.NewPassthroughResolver(cfg.AssetPrefix)
	}
	if s.props == nil {
		s.props = DemoProps(s.logger)
	}
	if s.tracer == nil {
		if cfg.Tracing {
			s.tracer = middleware.Tracer(middleware.WithTracerName(cfg.TracerName))
		} else {
			s.tracer = noop.NewTracerProvider().Tracer(cfg.TracerName)
		}
	}

	s.metrics = middleware.NewMetrics(
		middleware.WithNamespace(cfg.MetricsNamespace),
		middleware.WithRegistry(s.registry),
	)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		Subprotocols:    protocol.Subprotocols(),
		CheckOrigin:     OriginChecker(cfg.AllowedOrigins),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.metrics.HTTP)
	if s.config.Tracing {
		r.Use(middleware.Tracing(
			middleware.WithTracer(s.tracer),
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/healthz" && r.URL.Path != s.config.MetricsPath
			}),
		))
	}

	r.Get("/", s.servePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route(strings.TrimSuffix(AssetPath, "/"), func(r chi.Router) {
		r.Get("/ws", s.serveSession)
		r.Get("/{file}", serveRuntime)
		r.Head("/{file}", serveRuntime)
	})
	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Registry returns the registry metrics are served from.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return mferrors.New("E200").WithDetailf("Could not listen on %s.", s.config.Address).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*remote.Session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()))
		})
	}
}
