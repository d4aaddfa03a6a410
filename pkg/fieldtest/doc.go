// Package fieldtest provides helpers for testing code that renders math
// fields.
//
// A Harness drives a mathfield.Field against an in-memory widget, so tests
// can render props, emit widget events and inspect what the widget
// received:
//
//	func TestEquation(t *testing.T) {
//	    h := fieldtest.New(t)
//	    var value string
//	    h.Render(vdom.Props{
//	        "readOnly": true,
//	        "onCommit": func(e *dom.Event) { value = e.DetailMap()["value"].(string) },
//	    })
//	    h.Emit("change", map[string]any{"value": "x^2"})
//	    if value != "x^2" { ... }
//	}
//
// # Render Assertions
//
// Assert on the rendered host element:
//
//	fieldtest.ExpectAttribute(t, node, "class", "eq")
//	fieldtest.ExpectNotContains(t, node, "readOnly")
package fieldtest
