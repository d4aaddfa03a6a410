package mathfield

import "github.com/vango-dev/mathfield/pkg/dom"

type attachment struct {
	target dom.EventTarget
	event  string
	id     dom.ListenerID
}

// EventBridge keeps native listeners on the widget in sync with the current
// callback props.
type EventBridge struct {
	attached []attachment
}

// Attach registers a forwarding listener on target for every binding and
// returns how many were attached. Any listeners from a previous Attach are
// removed first, so a stale callback is never left registered.
func (b *EventBridge) Attach(target dom.EventTarget, bindings []Binding) int {
	b.Detach()
	if target == nil {
		return 0
	}

	for _, binding := range bindings {
		l := binding.Listener
		id := target.AddEventListener(binding.Handler.Event(), func(e *dom.Event) {
			l(e)
		})
		b.attached = append(b.attached, attachment{
			target: target,
			event:  binding.Handler.Event(),
			id:     id,
		})
	}
	return len(b.attached)
}

// Detach removes every listener attached by this bridge and returns how many
// were removed. It is idempotent.
func (b *EventBridge) Detach() int {
	n := len(b.attached)
	for _, a := range b.attached {
		a.target.RemoveEventListener(a.event, a.id)
	}
	b.attached = nil
	return n
}

// Attached returns the native event names currently listened to, in
// attachment order.
func (b *EventBridge) Attached() []string {
	out := make([]string, len(b.attached))
	for i, a := range b.attached {
		out[i] = a.event
	}
	return out
}
