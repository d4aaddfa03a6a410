//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser through syscall/js.
package jsdom

import (
	"sync"
	"syscall/js"

	"github.com/vango-dev/mathfield/pkg/dom"
)

// Document wraps the global document.
type Document struct {
	v js.Value
}

// NewDocument returns the page document.
func NewDocument() *Document {
	return &Document{v: js.Global().Get("document")}
}

// CreateElement calls document.createElement.
func (d *Document) CreateElement(tag string) dom.Element {
	return Wrap(d.v.Call("createElement", tag))
}

// Body returns document.body.
func (d *Document) Body() dom.Container {
	return Wrap(d.v.Get("body"))
}

// QuerySelector returns the first matching element, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	v := d.v.Call("querySelector", selector)
	if v.IsNull() {
		return nil
	}
	return Wrap(v)
}

// Element wraps a JS element. Listeners registered through it hold a
// js.Func that is released when the listener is removed.
type Element struct {
	v js.Value

	mu     sync.Mutex
	nextID dom.ListenerID
	funcs  map[dom.ListenerID]js.Func
}

// Wrap returns an Element for v.
func Wrap(v js.Value) *Element {
	return &Element{v: v, funcs: make(map[dom.ListenerID]js.Func)}
}

// Value returns the underlying JS object.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) TagName() string {
	return e.v.Get("localName").String()
}

func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) Attribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *Element) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e *Element) Property(name string) any {
	return toGo(e.v.Get(name))
}

func (e *Element) AppendChild(child dom.Element) {
	if c, ok := child.(*Element); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *Element) RemoveChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || !c.v.Get("parentNode").Equal(e.v) {
		return
	}
	e.v.Call("removeChild", c.v)
}

func (e *Element) AddEventListener(eventType string, l dom.Listener) dom.ListenerID {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		native := args[0]
		ev := fromJS(native)
		ev.Target = e
		ev.CurrentTarget = e
		l(ev)
		if ev.DefaultPrevented() {
			native.Call("preventDefault")
		}
		if ev.PropagationStopped() {
			native.Call("stopPropagation")
		}
		return nil
	})

	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.funcs[id] = fn
	e.mu.Unlock()

	e.v.Call("addEventListener", eventType, fn)
	return id
}

func (e *Element) RemoveEventListener(eventType string, id dom.ListenerID) {
	e.mu.Lock()
	fn, ok := e.funcs[id]
	delete(e.funcs, id)
	e.mu.Unlock()
	if !ok {
		return
	}
	e.v.Call("removeEventListener", eventType, fn)
	fn.Release()
}

// DispatchEvent dispatches e as a CustomEvent.
func (e *Element) DispatchEvent(ev *dom.Event) bool {
	init := map[string]any{
		"bubbles":    ev.Bubbles,
		"cancelable": ev.Cancelable,
		"detail":     toJS(ev.Detail),
	}
	native := js.Global().Get("CustomEvent").New(ev.Type, init)
	return e.v.Call("dispatchEvent", native).Bool()
}

// SetOptions calls the widget's setOptions method.
func (e *Element) SetOptions(options map[string]any) {
	e.v.Call("setOptions", toJS(options))
}

// OwnValueSetter returns the "value" setter defined on the element itself.
func (e *Element) OwnValueSetter() (dom.ValueSetter, bool) {
	return e.valueSetter(e.v)
}

// PrototypeValueSetter returns the "value" setter on the element's
// prototype.
func (e *Element) PrototypeValueSetter() (dom.ValueSetter, bool) {
	proto := js.Global().Get("Object").Call("getPrototypeOf", e.v)
	return e.valueSetter(proto)
}

func (e *Element) valueSetter(owner js.Value) (dom.ValueSetter, bool) {
	desc := js.Global().Get("Object").Call("getOwnPropertyDescriptor", owner, "value")
	if !desc.Truthy() {
		return nil, false
	}
	set := desc.Get("set")
	if set.Type() != js.TypeFunction {
		return nil, false
	}
	return setter{fn: set, el: e.v}, true
}

type setter struct {
	fn js.Value
	el js.Value
}

func (s setter) SetValue(v string) {
	s.fn.Call("call", s.el, v)
}

func (s setter) Same(other dom.ValueSetter) bool {
	o, ok := other.(setter)
	return ok && s.fn.Equal(o.fn)
}

var (
	_ dom.Document     = (*Document)(nil)
	_ dom.Container    = (*Element)(nil)
	_ dom.Widget       = (*Element)(nil)
	_ dom.InputElement = (*Element)(nil)
)
