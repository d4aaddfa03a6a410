// Package detached manages a DOM node that lives outside the rendered tree
// for the lifetime of the component that created it.
package detached

import (
	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/lifecycle"
)

// Node is an element owned by exactly one component instance. It is created
// lazily, appended to the document body on Mount and discarded on Unmount.
type Node struct {
	doc     dom.Document
	tag     string
	el      dom.Element
	mounted bool
}

// New returns a manager for a node of the given tag.
func New(doc dom.Document, tag string) *Node {
	return &Node{doc: doc, tag: tag}
}

// Element returns the node, creating it on first use. It stays the same
// element until Unmount.
func (n *Node) Element() dom.Element {
	if n.el == nil {
		n.el = n.doc.CreateElement(n.tag)
	}
	return n.el
}

// Mount appends the node to the document body.
func (n *Node) Mount() {
	if n.mounted {
		return
	}
	n.doc.Body().AppendChild(n.Element())
	n.mounted = true
}

// Unmount removes the node from the body and drops it. Safe to call twice.
func (n *Node) Unmount() {
	if n.el != nil && n.mounted {
		n.doc.Body().RemoveChild(n.el)
	}
	n.el = nil
	n.mounted = false
}

// Mounted reports whether the node is attached to the body.
func (n *Node) Mounted() bool {
	return n.mounted
}

// Use is the hook form: it memoizes one Node per owner, mounts it in the
// owner's first commit and unmounts it when the owner is disposed.
func Use(o *lifecycle.Owner, doc dom.Document, tag string) dom.Element {
	n := lifecycle.Memo(o, func() *Node { return New(doc, tag) })
	el := n.Element()
	o.LayoutEffect([]any{}, func() lifecycle.Cleanup {
		n.Mount()
		return n.Unmount
	})
	return el
}
