package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	mferrors "github.com/vango-dev/mathfield/internal/errors"
	"github.com/vango-dev/mathfield/pkg/mathfield"
	"github.com/vango-dev/mathfield/pkg/protocol"
	"github.com/vango-dev/mathfield/pkg/remote"
)

// serveSession upgrades the request and runs one field session until the
// page goes away. All fields of the session are driven from the read
// goroutine.
func (s *Server) serveSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.WebSocketError(err)
		code := "E201"
		if !s.upgrader.CheckOrigin(r) {
			code = "E202"
		}
		s.logger.Warn("session rejected",
			"error", mferrors.New(code).Wrap(err),
			"origin", r.Header.Get("Origin"))
		return
	}

	codec := protocol.Negotiate(conn.Subprotocol())
	logger := s.logger.With("remote", r.RemoteAddr, "codec", codec.Name())
	fields := make(map[string]*mathfield.Field)

	sess := remote.NewSession(conn, codec,
		remote.WithTimeouts(s.config.ReadTimeout, s.config.WriteTimeout),
		remote.WithLogger(logger),
		remote.WithTracer(s.tracer),
		remote.OnMount(func(ctx context.Context, w *remote.Widget) {
			s.mountField(ctx, logger, fields, w)
		}),
		remote.OnUnmount(func(_ context.Context, w *remote.Widget) {
			if f, ok := fields[w.ID()]; ok {
				f.Unmount()
				delete(fields, w.ID())
			}
		}),
	)

	s.track(sess, true)
	s.metrics.SessionOpened()
	logger.Info("session opened")
	defer func() {
		for id, f := range fields {
			f.Unmount()
			delete(fields, id)
		}
		s.track(sess, false)
		s.metrics.SessionClosed()
	}()

	if err := sess.ReadLoop(r.Context()); err != nil && !errors.Is(err, context.Canceled) {
		s.metrics.WebSocketError(err)
		logger.Debug("session ended", "error", err)
	}
}

func (s *Server) mountField(ctx context.Context, logger *slog.Logger, fields map[string]*mathfield.Field, w *remote.Widget) {
	if old, ok := fields[w.ID()]; ok {
		old.Unmount()
	}
	f := mathfield.New(
		mathfield.WithID(w.ID()),
		mathfield.WithTag(s.config.Tag),
		mathfield.WithLogger(logger),
		mathfield.WithMetrics(s.metrics),
	)
	if _, err := f.Render(ctx, s.props(w.ID())); err != nil {
		logger.Error("field render failed", "id", w.ID(), "error", mferrors.New("E203").Wrap(err))
		delete(fields, w.ID())
		return
	}
	f.Mount(w)
	f.Commit()
	fields[w.ID()] = f
}

func (s *Server) track(sess *remote.Session, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.sessions[sess] = struct{}{}
	} else {
		delete(s.sessions, sess)
	}
}
