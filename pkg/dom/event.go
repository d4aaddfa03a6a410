package dom

// EventInit mirrors the CustomEvent constructor options.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Detail     any
}

// Event is a DOM event as seen by Go listeners.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	Detail     any

	// Target is the element the event was dispatched on.
	Target Element

	// CurrentTarget is the element whose listener is running.
	CurrentTarget Element

	// Native holds the host-environment event, if any.
	Native any

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates a plain event that neither bubbles nor cancels.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType}
}

// NewCustomEvent creates a CustomEvent-style event.
func NewCustomEvent(eventType string, init EventInit) *Event {
	return &Event{
		Type:       eventType,
		Bubbles:    init.Bubbles,
		Cancelable: init.Cancelable,
		Detail:     init.Detail,
	}
}

// PreventDefault marks a cancelable event as prevented.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops bubbling after the current target.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// DetailMap returns Detail as a map when it has that shape.
func (e *Event) DetailMap() map[string]any {
	if m, ok := e.Detail.(map[string]any); ok {
		return m
	}
	return nil
}
