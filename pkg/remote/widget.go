package remote

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/protocol"
)

// Tag is the element name reported by Widget.TagName.
const Tag = "math-field"

// Widget is a server-side proxy for a widget in the page.
type Widget struct {
	session *Session
	id      string

	listeners dom.ListenerSet

	mu       sync.Mutex
	attrs    map[string]string
	props    map[string]any
	detached bool
}

func newWidget(s *Session, id string) *Widget {
	return &Widget{
		session: s,
		id:      id,
		attrs:   make(map[string]string),
		props:   make(map[string]any),
	}
}

// ID returns the widget id.
func (w *Widget) ID() string { return w.id }

func (w *Widget) TagName() string { return Tag }

// SetAttribute records an attribute locally. Attributes reach the page
// through rendered markup, not through the session.
func (w *Widget) SetAttribute(name, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attrs[name] = value
}

func (w *Widget) Attribute(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.attrs[name]
	return v, ok
}

func (w *Widget) RemoveAttribute(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.attrs, name)
}

// Property returns the last value reported by the page. Only "value" is
// tracked, from the detail of forwarded events.
func (w *Widget) Property(name string) any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.props[name]
}

// AddEventListener registers l and, for the first listener of eventType,
// asks the page to forward that event.
func (w *Widget) AddEventListener(eventType string, l dom.Listener) dom.ListenerID {
	id := w.listeners.Add(eventType, l)
	if w.listeners.Count(eventType) == 1 {
		w.send(protocol.Listen(w.id, eventType))
	}
	return id
}

// RemoveEventListener removes a listener and, when it was the last one for
// eventType, stops forwarding.
func (w *Widget) RemoveEventListener(eventType string, id dom.ListenerID) {
	removed, remaining := w.listeners.Remove(eventType, id)
	if removed && remaining == 0 {
		w.send(protocol.Unlisten(w.id, eventType))
	}
}

// DispatchEvent delivers e to local listeners. Proxied events do not
// bubble.
func (w *Widget) DispatchEvent(e *dom.Event) bool {
	e.Target = w
	e.CurrentTarget = w
	for _, l := range w.listeners.Snapshot(e.Type) {
		l(e)
		if e.PropagationStopped() {
			break
		}
	}
	e.CurrentTarget = nil
	return !e.DefaultPrevented()
}

// SetOptions sends options to the page. Values that cannot cross the wire,
// such as elements, are dropped.
func (w *Widget) SetOptions(options map[string]any) {
	out := make(map[string]any, len(options))
	for k, v := range options {
		if _, isElement := v.(dom.Element); isElement {
			w.session.logger.Debug("option not sent", "id", w.id, "option", k)
			continue
		}
		out[k] = v
	}
	w.send(protocol.SetOptions(w.id, out))
}

// Listening returns the event types forwarded from the page.
func (w *Widget) Listening() []string {
	return w.listeners.Types()
}

func (w *Widget) send(m protocol.Message) {
	w.mu.Lock()
	detached := w.detached
	w.mu.Unlock()
	if detached {
		return
	}
	if err := w.session.Send(m); err != nil {
		w.session.logger.Debug("send failed", "id", w.id, "type", m.Type, "error", err)
	}
}

// dispatchRemote delivers a forwarded event inside a span. A panicking
// listener is recorded on the span and does not stop the read loop.
func (w *Widget) dispatchRemote(ctx context.Context, eventType string, detail any) {
	_, span := w.session.config.Tracer.Start(ctx, "mathfield.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("mathfield.id", w.id),
			attribute.String("mathfield.event", eventType),
		),
	)
	defer span.End()

	if m, ok := detail.(map[string]any); ok {
		if v, ok := m["value"]; ok {
			w.mu.Lock()
			w.props["value"] = v
			w.mu.Unlock()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("listener panic: %v", r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			w.session.logger.Error("listener panic", "id", w.id, "event", eventType, "panic", r)
		}
	}()

	ev := dom.NewCustomEvent(eventType, dom.EventInit{Detail: detail})
	w.DispatchEvent(ev)
	span.SetStatus(codes.Ok, "")
}

// detach drops every listener without notifying the page.
func (w *Widget) detach() {
	w.mu.Lock()
	w.detached = true
	w.mu.Unlock()
	w.listeners.Clear()
}

var _ dom.Widget = (*Widget)(nil)
