// Package legacy holds the synthetic-input dispatcher used by older hosts
// that read the field's value from a hidden native input.
//
// Deprecated: bind to the field's commit and input callbacks instead. The
// dispatcher is only wired when a Field is built with WithSyntheticInput.
package legacy

import (
	"log/slog"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/lifecycle"
)

// Detail is the payload carried by a synthetic event.
type Detail struct {
	Value string
	Extra map[string]any
}

// asMap flattens d into the event detail object. Extra fields never
// override value.
func (d Detail) asMap() map[string]any {
	m := make(map[string]any, len(d.Extra)+1)
	for k, v := range d.Extra {
		m[k] = v
	}
	m["value"] = d.Value
	return m
}

// InputDispatcher makes a hidden native input look as though the user edited
// it, so value-tracking frameworks observe the change.
type InputDispatcher struct {
	ref    *lifecycle.Ref[dom.InputElement]
	logger *slog.Logger
}

// NewInputDispatcher returns an unbound dispatcher. logger may be nil.
func NewInputDispatcher(logger *slog.Logger) *InputDispatcher {
	if logger == nil {
		logger = slog.Default().With("component", "legacy")
	}
	return &InputDispatcher{
		ref:    lifecycle.NewRef[dom.InputElement](nil),
		logger: logger,
	}
}

// Ref is the reference the host binds to the hidden input.
func (d *InputDispatcher) Ref() *lifecycle.Ref[dom.InputElement] {
	return d.ref
}

// Dispatch writes detail.Value through the input's native value setter and
// then dispatches a bubbling, cancelable custom event of eventType carrying
// the detail. It is a no-op while the ref is unbound and returns whether an
// event was dispatched.
//
// The element must expose a value setter; an element without one is a
// programming error and panics.
func (d *InputDispatcher) Dispatch(eventType string, detail Detail) bool {
	el, ok := d.ref.Get()
	if !ok || el == nil {
		return false
	}

	setter := ValueSetter(el)
	if setter == nil {
		panic("legacy: bound element " + el.TagName() + " has no value setter")
	}
	setter.SetValue(detail.Value)

	ev := dom.NewCustomEvent(eventType, dom.EventInit{
		Bubbles:    true,
		Cancelable: true,
		Detail:     detail.asMap(),
	})
	el.DispatchEvent(ev)
	d.logger.Debug("synthetic input dispatched", "event", eventType)
	return true
}

// ValueSetter picks the setter to write through: the element's own setter
// when it differs from the prototype's, otherwise the prototype's. It
// returns nil when neither exists.
func ValueSetter(el dom.InputElement) dom.ValueSetter {
	proto, hasProto := el.PrototypeValueSetter()
	own, hasOwn := el.OwnValueSetter()
	if hasOwn && (!hasProto || !own.Same(proto)) {
		return own
	}
	if hasProto {
		return proto
	}
	return nil
}
