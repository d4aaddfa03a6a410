// Package vdom provides the virtual node types used by mathfield components.
//
// A component receives its inputs as a Props bag and returns a VNode tree.
// Props values are primitives, markup fragments (*VNode or []*VNode) or
// callbacks; it is up to the component to decide which props become DOM
// attributes and which are consumed elsewhere.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	El("math-field", Class("equation"), Data("mf-id", "f1"),
//	    Text("x^2"),
//	)
//
// Attr, []Attr, Props and EventHandler arguments populate Props; *VNode,
// []*VNode and string arguments become children.
package vdom
