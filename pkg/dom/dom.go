package dom

// Listener receives a dispatched event.
type Listener func(*Event)

// ListenerID identifies a registered listener so it can be removed later.
// Go funcs are not comparable, so removal goes through the id returned by
// AddEventListener rather than the func value.
type ListenerID uint64

// EventTarget is anything that accepts listeners.
type EventTarget interface {
	AddEventListener(eventType string, l Listener) ListenerID

	// RemoveEventListener is a no-op for unknown ids or event types.
	RemoveEventListener(eventType string, id ListenerID)

	// DispatchEvent delivers e and reports whether the default action
	// should proceed (false once a cancelable event is prevented).
	DispatchEvent(e *Event) bool
}

// Element is a DOM element.
type Element interface {
	EventTarget
	TagName() string
	SetAttribute(name, value string)
	Attribute(name string) (string, bool)
	RemoveAttribute(name string)

	// Property reads a JS-side property such as "value".
	Property(name string) any
}

// Container is an element that accepts children.
type Container interface {
	Element
	AppendChild(child Element)

	// RemoveChild is a no-op when child is not attached here.
	RemoveChild(child Element)
}

// Widget is the editable math element. Apart from listeners, SetOptions is
// the only call made on it.
type Widget interface {
	Element
	SetOptions(options map[string]any)
}

// ValueSetter is a "value" property setter found on an input element or its
// prototype.
type ValueSetter interface {
	SetValue(value string)

	// Same reports whether other is the same underlying setter.
	Same(other ValueSetter) bool
}

// InputElement is a native input whose value setters can be inspected.
type InputElement interface {
	Element

	// OwnValueSetter returns the setter defined on the element itself.
	// Frameworks that track input values patch this one.
	OwnValueSetter() (ValueSetter, bool)

	// PrototypeValueSetter returns the setter inherited from the element
	// prototype.
	PrototypeValueSetter() (ValueSetter, bool)
}

// Document creates elements and exposes the body.
type Document interface {
	CreateElement(tag string) Element
	Body() Container
}
