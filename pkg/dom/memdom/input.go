package memdom

import "github.com/vango-dev/mathfield/pkg/dom"

// valueTags are the tags whose prototype defines a "value" setter.
var valueTags = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// prototypeSetter is the shared prototype-level "value" setter. It writes
// the property and nothing else.
type prototypeSetter struct{}

var protoValue = &prototypeSetter{}

func (p *prototypeSetter) SetValue(string) {
	panic("memdom: prototype setter must be bound to an element")
}

func (p *prototypeSetter) Same(other dom.ValueSetter) bool {
	switch o := other.(type) {
	case *prototypeSetter:
		return o == p
	case boundSetter:
		return o.proto == p
	}
	return false
}

// boundSetter is a setter bound to a receiver, the Go equivalent of
// setter.call(element, value).
type boundSetter struct {
	proto *prototypeSetter
	el    *Element
}

func (b boundSetter) SetValue(v string) {
	b.el.SetProperty("value", v)
}

func (b boundSetter) Same(other dom.ValueSetter) bool {
	return b.proto.Same(other)
}

// InterceptingSetter is an instance-level setter of the kind value-tracking
// frameworks install: it observes writes and then forwards them.
type InterceptingSetter struct {
	el       *Element
	observed []string
}

// SetValue records v and forwards to the prototype setter.
func (s *InterceptingSetter) SetValue(v string) {
	s.observed = append(s.observed, v)
	s.el.SetProperty("value", v)
}

// Same reports identity.
func (s *InterceptingSetter) Same(other dom.ValueSetter) bool {
	o, ok := other.(*InterceptingSetter)
	return ok && o == s
}

// Observed returns the values written through this setter.
func (s *InterceptingSetter) Observed() []string {
	return append([]string(nil), s.observed...)
}

// NewInput creates a detached <input> element.
func NewInput() *Element {
	return newElement("input")
}

// InterceptValue installs an instance-level setter and returns it.
func (e *Element) InterceptValue() *InterceptingSetter {
	s := &InterceptingSetter{el: e}
	e.SetOwnValueSetter(s)
	return s
}

// SetOwnValueSetter installs s as the instance-level setter; nil removes it.
func (e *Element) SetOwnValueSetter(s dom.ValueSetter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ownSetter = s
}

// OwnValueSetter returns the instance-level setter, if installed.
func (e *Element) OwnValueSetter() (dom.ValueSetter, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ownSetter, e.ownSetter != nil
}

// PrototypeValueSetter returns the prototype setter bound to e. Elements
// whose tag has no value property report false.
func (e *Element) PrototypeValueSetter() (dom.ValueSetter, bool) {
	if !valueTags[e.tag] {
		return nil, false
	}
	return boundSetter{proto: protoValue, el: e}, true
}

// PrototypeSetter returns the prototype-level setter bound to e without the
// tag check, for installing it as an instance setter in tests.
func (e *Element) PrototypeSetter() dom.ValueSetter {
	return boundSetter{proto: protoValue, el: e}
}
