package remote

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/mathfield/pkg/protocol"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("remote: session closed")

// MountFunc is called on the read goroutine when the page mounts or
// unmounts a widget.
type MountFunc func(ctx context.Context, w *Widget)

// SessionConfig holds session settings.
type SessionConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
	Tracer       trace.Tracer
	OnMount      MountFunc
	OnUnmount    MountFunc
}

// Option configures a Session.
type Option func(*SessionConfig)

// WithTimeouts sets the read and write deadlines.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *SessionConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *SessionConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithTracer sets the tracer used for event dispatch spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *SessionConfig) {
		if t != nil {
			c.Tracer = t
		}
	}
}

// OnMount registers the mount callback.
func OnMount(fn MountFunc) Option {
	return func(c *SessionConfig) { c.OnMount = fn }
}

// OnUnmount registers the unmount callback. It runs before the widget is
// detached from the session.
func OnUnmount(fn MountFunc) Option {
	return func(c *SessionConfig) { c.OnUnmount = fn }
}

// Session is one WebSocket connection carrying any number of widgets.
type Session struct {
	conn   *websocket.Conn
	codec  protocol.Codec
	config SessionConfig
	logger *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	widgets map[string]*Widget

	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}

	eventsIn atomic.Int64
	sent     atomic.Int64
}

// NewSession wraps conn. The codec should match the negotiated
// subprotocol.
func NewSession(conn *websocket.Conn, codec protocol.Codec, opts ...Option) *Session {
	cfg := SessionConfig{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		Logger:       slog.Default().With("component", "remote"),
		Tracer:       otel.Tracer("mathfield/remote"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if codec == nil {
		codec = protocol.JSONCodec{}
	}
	return &Session{
		conn:    conn,
		codec:   codec,
		config:  cfg,
		logger:  cfg.Logger.With("codec", codec.Name()),
		widgets: make(map[string]*Widget),
		done:    make(chan struct{}),
	}
}

// Widget returns the proxy registered under id, creating it if needed.
func (s *Session) Widget(id string) *Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[id]
	if !ok {
		w = newWidget(s, id)
		s.widgets[id] = w
	}
	return w
}

// Lookup returns the proxy registered under id.
func (s *Session) Lookup(id string) (*Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[id]
	return w, ok
}

// Widgets returns the registered ids, sorted.
func (s *Session) Widgets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.widgets))
	for id := range s.widgets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Send encodes m and writes it as one frame.
func (s *Session) Send(m protocol.Message) error {
	if s.closed.Load() {
		return ErrClosed
	}
	data, err := s.codec.Encode(m)
	if err != nil {
		return err
	}

	frameType := websocket.TextMessage
	if s.codec.Binary() {
		frameType = websocket.BinaryMessage
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(frameType, data); err != nil {
		return err
	}
	s.sent.Add(1)
	return nil
}

// ReadLoop reads and handles messages until the connection fails, the peer
// closes it or ctx is cancelled. The session is closed on return.
func (s *Session) ReadLoop(ctx context.Context) error {
	defer s.Close()

	stop := context.AfterFunc(ctx, func() { s.conn.Close() })
	defer stop()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return err
		}

		m, err := s.codec.Decode(data)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			code := protocol.ErrInvalidMessage
			if errors.Is(err, protocol.ErrMessageTooLarge) {
				code = protocol.ErrTooLarge
			}
			s.sendError(code, "invalid message")
			continue
		}
		s.handle(ctx, m)
	}
}

func (s *Session) handle(ctx context.Context, m protocol.Message) {
	switch m.Type {
	case protocol.TypeMount:
		w := s.Widget(m.ID)
		s.logger.Debug("widget mounted", "id", m.ID)
		if s.config.OnMount != nil {
			s.config.OnMount(ctx, w)
		}

	case protocol.TypeUnmount:
		w, ok := s.Lookup(m.ID)
		if !ok {
			return
		}
		if s.config.OnUnmount != nil {
			s.config.OnUnmount(ctx, w)
		}
		s.remove(m.ID)

	case protocol.TypeEvent:
		w, ok := s.Lookup(m.ID)
		if !ok {
			s.sendError(protocol.ErrUnknownField, "no widget "+m.ID)
			return
		}
		s.eventsIn.Add(1)
		w.dispatchRemote(ctx, m.Event, m.Detail)

	case protocol.TypeError:
		s.logger.Warn("client error", "code", m.Code, "message", m.Message)

	default:
		s.logger.Warn("unexpected message", "type", m.Type)
	}
}

func (s *Session) sendError(code protocol.ErrorCode, msg string) {
	if err := s.Send(protocol.Error(code, "%s", msg)); err != nil {
		s.logger.Debug("error reply failed", "error", err)
	}
}

func (s *Session) remove(id string) {
	s.mu.Lock()
	w, ok := s.widgets[id]
	delete(s.widgets, id)
	s.mu.Unlock()
	if ok {
		w.detach()
	}
}

// Close detaches every widget and closes the connection. Calling it more
// than once is safe.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)

		s.mu.Lock()
		widgets := s.widgets
		s.widgets = make(map[string]*Widget)
		s.mu.Unlock()
		for _, w := range widgets {
			w.detach()
		}

		s.writeMu.Lock()
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.writeMu.Unlock()
		err = s.conn.Close()

		s.logger.Info("session closed",
			"events", s.eventsIn.Load(),
			"sent", s.sent.Load())
	})
	return err
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}
