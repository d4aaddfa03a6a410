package mathfield

import (
	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

// Handler enumerates the callback props the field understands. Each maps
// to the native event the widget emits.
type Handler uint8

const (
	HandleBlur Handler = iota + 1
	HandleCommit
	HandleFocus
	HandleFocusOut
	HandleInput
	HandleKeystroke
	HandleMathError
	HandleModeChange
	HandleReadAloudStatus
	HandleSelectionWillChange
	HandleUndoStateDidChange
	HandleUndoStateWillChange
	HandleVirtualKeyboardToggle

	handlerCount = iota + 1
)

type handlerEntry struct {
	prop  string
	event string
}

var handlerTable = [handlerCount]handlerEntry{
	{},
	{"onBlur", "blur"},
	{"onCommit", "change"},
	{"onFocus", "focus"},
	{"onFocusOut", "focus-out"},
	{"onInput", "input"},
	{"onKeystroke", "keystroke"},
	{"onMathError", "math-error"},
	{"onModeChange", "mode-change"},
	{"onReadAloudStatus", "read-aloud-status"},
	{"onSelectionWillChange", "selection-will-change"},
	{"onUndoStateDidChange", "undo-state-did-change"},
	{"onUndoStateWillChange", "undo-state-will-change"},
	{"onVirtualKeyboardToggle", "virtual-keyboard-toggle"},
}

var handlersByProp = func() map[string]Handler {
	m := make(map[string]Handler, handlerCount-1)
	for h := Handler(1); h < handlerCount; h++ {
		m[handlerTable[h].prop] = h
	}
	return m
}()

// Prop returns the callback prop name, e.g. "onCommit".
func (h Handler) Prop() string {
	if !h.Valid() {
		return ""
	}
	return handlerTable[h].prop
}

// Event returns the native event name, e.g. "change".
func (h Handler) Event() string {
	if !h.Valid() {
		return ""
	}
	return handlerTable[h].event
}

// String returns the prop name.
func (h Handler) String() string { return h.Prop() }

// Valid reports whether h is one of the enumerated handlers.
func (h Handler) Valid() bool {
	return h > 0 && int(h) < handlerCount
}

// LookupHandler returns the handler for a (normalized) prop name.
func LookupHandler(prop string) (Handler, bool) {
	h, ok := handlersByProp[prop]
	return h, ok
}

// AllHandlers returns every handler in declaration order.
func AllHandlers() []Handler {
	out := make([]Handler, 0, handlerCount-1)
	for h := Handler(1); h < handlerCount; h++ {
		out = append(out, h)
	}
	return out
}

// On binds fn to h as a prop.
func On(h Handler, fn func(*dom.Event)) vdom.EventHandler {
	return vdom.EventHandler{Event: h.Prop(), Handler: fn}
}

// OnBlur handles blur events.
func OnBlur(fn func(*dom.Event)) vdom.EventHandler { return On(HandleBlur, fn) }

// OnCommit handles change events, fired when the value is committed.
func OnCommit(fn func(*dom.Event)) vdom.EventHandler { return On(HandleCommit, fn) }

// OnFocus handles focus events.
func OnFocus(fn func(*dom.Event)) vdom.EventHandler { return On(HandleFocus, fn) }

// OnFocusOut handles focus-out events, fired when the caret leaves the field.
func OnFocusOut(fn func(*dom.Event)) vdom.EventHandler { return On(HandleFocusOut, fn) }

// OnInput handles input events, fired on every edit.
func OnInput(fn func(*dom.Event)) vdom.EventHandler { return On(HandleInput, fn) }

// OnKeystroke handles keystroke events.
func OnKeystroke(fn func(*dom.Event)) vdom.EventHandler { return On(HandleKeystroke, fn) }

// OnMathError handles math-error events.
func OnMathError(fn func(*dom.Event)) vdom.EventHandler { return On(HandleMathError, fn) }

// OnModeChange handles mode-change events.
func OnModeChange(fn func(*dom.Event)) vdom.EventHandler { return On(HandleModeChange, fn) }

// OnReadAloudStatus handles read-aloud-status events.
func OnReadAloudStatus(fn func(*dom.Event)) vdom.EventHandler {
	return On(HandleReadAloudStatus, fn)
}

// OnSelectionWillChange handles selection-will-change events.
func OnSelectionWillChange(fn func(*dom.Event)) vdom.EventHandler {
	return On(HandleSelectionWillChange, fn)
}

// OnUndoStateDidChange handles undo-state-did-change events.
func OnUndoStateDidChange(fn func(*dom.Event)) vdom.EventHandler {
	return On(HandleUndoStateDidChange, fn)
}

// OnUndoStateWillChange handles undo-state-will-change events.
func OnUndoStateWillChange(fn func(*dom.Event)) vdom.EventHandler {
	return On(HandleUndoStateWillChange, fn)
}

// OnVirtualKeyboardToggle handles virtual-keyboard-toggle events.
func OnVirtualKeyboardToggle(fn func(*dom.Event)) vdom.EventHandler {
	return On(HandleVirtualKeyboardToggle, fn)
}

// listenerOf adapts a callback prop value to a dom.Listener.
func listenerOf(v any) (dom.Listener, bool) {
	switch fn := v.(type) {
	case func(*dom.Event):
		return fn, fn != nil
	case dom.Listener:
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*dom.Event) { fn() }, true
	}
	return nil, false
}
