package fieldtest

import (
	"context"
	"testing"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/dom/memdom"
	"github.com/vango-dev/mathfield/pkg/mathfield"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

// Harness mounts a Field on an in-memory widget. The field is unmounted
// when the test ends.
type Harness struct {
	t testing.TB

	Field    *mathfield.Field
	Widget   *memdom.Element
	Document *memdom.Document

	// Input is the hidden input bound to the synthetic dispatcher, or nil
	// when the field has none.
	Input *memdom.Element

	node *vdom.VNode
}

// New creates a harness. The field is attached to an in-memory document,
// so options that need one (such as WithKeyboardContainer) work.
func New(t testing.TB, opts ...mathfield.FieldOption) *Harness {
	t.Helper()
	doc := memdom.NewDocument()
	opts = append([]mathfield.FieldOption{mathfield.WithDocument(doc)}, opts...)
	h := &Harness{
		t:        t,
		Field:    mathfield.New(opts...),
		Widget:   memdom.NewWidget(mathfield.DefaultTag),
		Document: doc,
	}
	t.Cleanup(h.Field.Unmount)
	return h
}

// Render renders props, mounts the widget on first use and commits. It
// fails the test when rendering fails.
func (h *Harness) Render(props vdom.Props) *vdom.VNode {
	h.t.Helper()
	node, err := h.Field.Render(context.Background(), props)
	if err != nil {
		h.t.Fatalf("Render: %v", err)
	}
	if h.Field.Widget() == nil {
		h.Field.Mount(h.Widget)
	}
	if d := h.Field.Dispatcher(); d != nil && !d.Ref().IsSet() {
		h.Input = memdom.NewInput()
		d.Ref().Set(h.Input)
	}
	h.Field.Commit()
	h.node = node
	return node
}

// Emit dispatches a widget event the way the widget itself would.
func (h *Harness) Emit(eventType string, detail any) *dom.Event {
	return h.Widget.Emit(eventType, detail)
}

// Node returns the tree from the last Render.
func (h *Harness) Node() *vdom.VNode {
	return h.node
}

// HTML renders the tree from the last Render.
func (h *Harness) HTML() string {
	return RenderToString(h.node)
}

// OptionsCalls returns how many times the widget received options.
func (h *Harness) OptionsCalls() int {
	return len(h.Widget.OptionsCalls())
}

// LastOptions returns the most recent options object, or nil.
func (h *Harness) LastOptions() map[string]any {
	calls := h.Widget.OptionsCalls()
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1]
}

// ExpectListening asserts the exact set of events the widget has
// listeners for.
func (h *Harness) ExpectListening(events ...string) {
	h.t.Helper()
	got := h.Widget.ListenedTypes()
	want := sortedCopy(events)
	if len(got) != len(want) {
		h.t.Errorf("listening to %v, want %v", got, want)
		return
	}
	for i := range got {
		if got[i] != want[i] {
			h.t.Errorf("listening to %v, want %v", got, want)
			return
		}
	}
}

// ExpectOptionsCalls asserts how many times the widget received options.
func (h *Harness) ExpectOptionsCalls(n int) {
	h.t.Helper()
	if got := h.OptionsCalls(); got != n {
		h.t.Errorf("SetOptions called %d times, want %d", got, n)
	}
}
