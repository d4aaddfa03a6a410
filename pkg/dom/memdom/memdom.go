// Package memdom is an in-memory implementation of package dom.
//
// It models just enough of a browser document for the mathfield adapter:
// element trees, ordered listeners with bubbling, widget SetOptions calls
// (recorded for inspection), and the input "value" setter split between an
// instance-level descriptor and the prototype.
package memdom

import (
	"sync"

	"github.com/vango-dev/mathfield/pkg/dom"
)

// Document is an in-memory document.
type Document struct {
	body *Element
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{body: newElement("body")}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	return newElement(tag)
}

// Body returns the document body.
func (d *Document) Body() dom.Container {
	return d.body
}

// Element is an in-memory element. It satisfies dom.Container, dom.Widget and
// dom.InputElement.
type Element struct {
	tag string

	mu       sync.Mutex
	attrs    map[string]string
	props    map[string]any
	parent   *Element
	children []*Element
	options  []map[string]any

	ownSetter dom.ValueSetter

	listeners dom.ListenerSet
}

// NewWidget creates a detached element suitable as a mathfield widget.
func NewWidget(tag string) *Element {
	return newElement(tag)
}

func newElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
		props: make(map[string]any),
	}
}

// TagName returns the element tag.
func (e *Element) TagName() string { return e.tag }

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// Attribute returns an attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, name)
}

// Property returns a JS-side property.
func (e *Element) Property(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.props[name]
}

// SetProperty sets a JS-side property directly, bypassing any setter.
func (e *Element) SetProperty(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[name] = value
}

// Value returns the "value" property as a string.
func (e *Element) Value() string {
	s, _ := e.Property("value").(string)
	return s
}

// AppendChild attaches child, detaching it from any previous parent.
func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	if p := c.Parent(); p != nil {
		p.RemoveChild(c)
	}

	e.mu.Lock()
	e.children = append(e.children, c)
	e.mu.Unlock()

	c.mu.Lock()
	c.parent = e
	c.mu.Unlock()
}

// RemoveChild detaches child. It is a no-op when child is not attached here.
func (e *Element) RemoveChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}

	e.mu.Lock()
	found := false
	for i, existing := range e.children {
		if existing == c {
			e.children = append(e.children[:i:i], e.children[i+1:]...)
			found = true
			break
		}
	}
	e.mu.Unlock()

	if found {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Element(nil), e.children...)
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.parent
}

// AddEventListener registers l for eventType.
func (e *Element) AddEventListener(eventType string, l dom.Listener) dom.ListenerID {
	return e.listeners.Add(eventType, l)
}

// RemoveEventListener unregisters a listener by id.
func (e *Element) RemoveEventListener(eventType string, id dom.ListenerID) {
	e.listeners.Remove(eventType, id)
}

// ListenerCount returns the number of listeners for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return e.listeners.Count(eventType)
}

// ListenedTypes returns event types with at least one listener.
func (e *Element) ListenedTypes() []string {
	return e.listeners.Types()
}

// DispatchEvent delivers ev to this element and, if it bubbles, to each
// ancestor until propagation is stopped.
func (e *Element) DispatchEvent(ev *dom.Event) bool {
	ev.Target = e
	for cur := e; cur != nil; cur = cur.Parent() {
		ev.CurrentTarget = cur
		for _, l := range cur.listeners.Snapshot(ev.Type) {
			l(ev)
		}
		if !ev.Bubbles || ev.PropagationStopped() {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.DefaultPrevented()
}

// Emit dispatches a non-bubbling custom event carrying detail, the way the
// widget reports its own events.
func (e *Element) Emit(eventType string, detail any) *dom.Event {
	ev := dom.NewCustomEvent(eventType, dom.EventInit{Detail: detail})
	e.DispatchEvent(ev)
	return ev
}

// SetOptions records a copy of options.
func (e *Element) SetOptions(options map[string]any) {
	cp := make(map[string]any, len(options))
	for k, v := range options {
		cp[k] = v
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.options = append(e.options, cp)
}

// OptionsCalls returns every options object passed to SetOptions, in order.
func (e *Element) OptionsCalls() []map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]map[string]any(nil), e.options...)
}
