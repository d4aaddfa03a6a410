package mathfield

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vango-dev/mathfield/pkg/detached"
	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/legacy"
	"github.com/vango-dev/mathfield/pkg/lifecycle"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

// DefaultTag is the custom element name the widget registers.
const DefaultTag = "math-field"

// IDAttr carries the field id on the host element so a remote client can
// match the element to its session widget.
const IDAttr = "data-mf-id"

// ErrUnmounted is returned when rendering a field after Unmount.
var ErrUnmounted = errors.New("mathfield: field is unmounted")

// Observer receives lifecycle counts, typically for metrics.
type Observer interface {
	OptionsApplied()
	OptionsSkipped()
	ListenersAttached(n int)
	ListenersDetached(n int)
	EventDispatched(event string)
}

type nopObserver struct{}

func (nopObserver) OptionsApplied()        {}
func (nopObserver) OptionsSkipped()        {}
func (nopObserver) ListenersAttached(int)  {}
func (nopObserver) ListenersDetached(int)  {}
func (nopObserver) EventDispatched(string) {}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) FieldOption {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTag overrides the host element tag.
func WithTag(tag string) FieldOption {
	return func(f *Field) {
		if tag != "" {
			f.tag = tag
		}
	}
}

// WithID stamps the host element with IDAttr.
func WithID(id string) FieldOption {
	return func(f *Field) { f.id = id }
}

// WithMetrics routes lifecycle counts to o.
func WithMetrics(o Observer) FieldOption {
	return func(f *Field) {
		if o != nil {
			f.observer = o
		}
	}
}

// WithDocument sets the document used for nodes outside the render tree.
func WithDocument(doc dom.Document) FieldOption {
	return func(f *Field) { f.doc = doc }
}

// WithKeyboardContainer gives the field its own virtual keyboard container,
// a <div> appended to the document body while the field is mounted. It is
// passed as the virtualKeyboardContainer option unless the props set one.
// Requires WithDocument.
func WithKeyboardContainer() FieldOption {
	return func(f *Field) { f.keyboard = true }
}

// WithSyntheticInput renders a hidden native input next to the field and
// mirrors every widget input event to it as a synthetic change event.
//
// Deprecated: subscribe with OnInput or OnCommit instead.
func WithSyntheticInput() FieldOption {
	return func(f *Field) {
		f.legacyInput = true
	}
}

// Field adapts the math widget to declarative props. A host drives it
// through Render, Mount, Commit and Unmount:
//
//	f := mathfield.New()
//	node, _ := f.Render(ctx, props) // apply node to the page
//	f.Mount(widget)                 // once the element exists
//	f.Commit()                      // after every render
//	...
//	f.Unmount()
//
// A Field is not safe for concurrent use.
type Field struct {
	owner   *lifecycle.Owner
	widget  *lifecycle.Ref[dom.Widget]
	updater OptionUpdater
	bridge  EventBridge

	tag      string
	id       string
	logger   *slog.Logger
	observer Observer

	doc         dom.Document
	keyboard    bool
	legacyInput bool
	synthetic   *legacy.InputDispatcher

	last Classification
}

// New creates an unmounted field.
func New(opts ...FieldOption) *Field {
	f := &Field{
		owner:    lifecycle.NewOwner(),
		widget:   lifecycle.NewRef[dom.Widget](nil),
		tag:      DefaultTag,
		logger:   slog.Default().With("component", "mathfield"),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.legacyInput {
		f.synthetic = legacy.NewInputDispatcher(f.logger.With("path", "synthetic-input"))
	}
	return f
}

// Render classifies props, schedules the option push and listener sync for
// the next Commit, and returns the host element to place in the page.
func (f *Field) Render(ctx context.Context, props vdom.Props) (*vdom.VNode, error) {
	if f.owner.IsDisposed() {
		return nil, ErrUnmounted
	}
	f.owner.BeginRender()

	cls, err := Classify(ctx, props)
	if err != nil {
		return nil, err
	}

	if f.keyboard && f.doc != nil {
		container := detached.Use(f.owner, f.doc, "div")
		if _, set := cls.Options.Get(OptVirtualKeyboardContainer); !set {
			cls.Options.Set(OptVirtualKeyboardContainer, container)
		}
	}
	f.last = cls

	current := widgetDep{f.widget.Current()}
	options := cls.Options
	f.owner.LayoutEffect([]any{current, options}, func() lifecycle.Cleanup {
		f.pushOptions(options)
		return nil
	})

	bindings := cls.Bindings
	f.owner.LayoutEffect([]any{current, props}, func() lifecycle.Cleanup {
		return f.attach(bindings)
	})

	if f.synthetic != nil {
		f.owner.LayoutEffect([]any{current}, f.mirrorInput)
	}

	host := vdom.El(f.tag, cls.Passthrough)
	if f.id != "" {
		host.Props[IDAttr] = f.id
	}
	if f.synthetic == nil {
		return host, nil
	}
	return vdom.Fragment(host, vdom.Input(vdom.Type("hidden"), vdom.Hidden())), nil
}

// Mount binds the live widget element. It takes effect at the next Commit,
// with or without a Render in between. Mounting a different widget moves
// the listeners and configuration to it.
func (f *Field) Mount(w dom.Widget) {
	prev := f.widget.Current()
	f.widget.Set(w)
	f.owner.ReplaceDep(widgetDep{prev}, widgetDep{w})
}

// Commit runs the effects scheduled by the last Render.
func (f *Field) Commit() {
	f.owner.Commit()
}

// Update renders and commits in one step, for hosts that apply the tree
// synchronously.
func (f *Field) Update(ctx context.Context, props vdom.Props) (*vdom.VNode, error) {
	node, err := f.Render(ctx, props)
	if err != nil {
		return nil, err
	}
	f.Commit()
	return node, nil
}

// Unmount removes every listener and owned node and releases the widget.
// Calling it twice is safe.
func (f *Field) Unmount() {
	f.owner.Dispose()
	f.widget.Clear()
	f.updater.Reset()
}

// Widget returns the bound widget, or nil before Mount.
func (f *Field) Widget() dom.Widget {
	return f.widget.Current()
}

// Classification returns the result of the last Render.
func (f *Field) Classification() Classification {
	return f.last
}

// Dispatcher returns the synthetic-input dispatcher, or nil unless the
// field was built with WithSyntheticInput. The host binds its Ref to the
// hidden input.
func (f *Field) Dispatcher() *legacy.InputDispatcher {
	return f.synthetic
}

func (f *Field) pushOptions(options Options) {
	w := f.widget.Current()
	if w == nil {
		return
	}
	if f.updater.Update(w, options) {
		f.observer.OptionsApplied()
		f.logger.Debug("options applied", "keys", options.Keys())
		return
	}
	f.observer.OptionsSkipped()
}

func (f *Field) attach(bindings []Binding) lifecycle.Cleanup {
	w := f.widget.Current()
	if w == nil {
		return nil
	}

	wrapped := make([]Binding, len(bindings))
	for i, b := range bindings {
		l, event := b.Listener, b.Handler.Event()
		wrapped[i] = Binding{Handler: b.Handler, Listener: func(e *dom.Event) {
			f.observer.EventDispatched(event)
			l(e)
		}}
	}

	n := f.bridge.Attach(w, wrapped)
	f.observer.ListenersAttached(n)
	return func() {
		f.observer.ListenersDetached(f.bridge.Detach())
	}
}

func (f *Field) mirrorInput() lifecycle.Cleanup {
	w := f.widget.Current()
	if w == nil {
		return nil
	}
	id := w.AddEventListener(HandleInput.Event(), func(e *dom.Event) {
		f.synthetic.Dispatch("change", legacy.Detail{Value: eventValue(w, e)})
	})
	return func() { w.RemoveEventListener(HandleInput.Event(), id) }
}

// widgetDep wraps the bound widget as an effect dependency. Wrapping keeps
// a nil widget distinct from other nil dependencies and compares widgets by
// interface identity.
type widgetDep struct{ w dom.Widget }

// eventValue reads the current value from the event detail, falling back to
// the widget's value property.
func eventValue(w dom.Widget, e *dom.Event) string {
	if v, ok := e.DetailMap()["value"].(string); ok {
		return v
	}
	if v, ok := w.Property("value").(string); ok {
		return v
	}
	return ""
}
