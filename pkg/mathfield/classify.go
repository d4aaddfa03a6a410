package mathfield

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/render"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

// Binding is a callback prop resolved to the native event it listens for.
type Binding struct {
	Handler  Handler
	Listener dom.Listener
}

// Classification is the three-way split of a property bag.
type Classification struct {
	// Options are forwarded to the widget through SetOptions.
	Options Options

	// Passthrough are applied to the host element as attributes.
	Passthrough vdom.Props

	// Bindings are the function-valued handler props, ordered by Handler.
	Bindings []Binding

	// Handled lists every normalized handler prop present in the bag,
	// including ones whose value was not a function.
	Handled []string
}

// keyClass is the partition a normalized prop name belongs to.
type keyClass uint8

const (
	classPassthrough keyClass = iota
	classOption
	classHandler
)

// classifyKey is total over prop names: every name falls into exactly one
// partition, with handlers taking precedence.
func classifyKey(name string) keyClass {
	if _, ok := LookupHandler(name); ok {
		return classHandler
	}
	if _, ok := LookupOption(name); ok {
		return classOption
	}
	return classPassthrough
}

// Classify partitions props. It has no side effects and is deterministic:
// props are visited in lexical key order, so when two names normalize to the
// same key the later one wins.
func Classify(ctx context.Context, props vdom.Props) (Classification, error) {
	c := Classification{
		Options:     make(Options),
		Passthrough: make(vdom.Props),
	}
	bound := make(map[Handler]dom.Listener)

	for _, key := range props.Keys() {
		value := props[key]
		name := Normalize(key)

		switch classifyKey(name) {
		case classHandler:
			h, _ := LookupHandler(name)
			c.Handled = append(c.Handled, name)
			if l, ok := listenerOf(value); ok {
				bound[h] = l
			} else {
				delete(bound, h)
			}

		case classOption:
			v, err := renderMarkup(ctx, value)
			if err != nil {
				return Classification{}, fmt.Errorf("render option %s: %w", name, err)
			}
			c.Options[name] = v

		default:
			c.Passthrough[name] = value
		}
	}

	for h, l := range bound {
		c.Bindings = append(c.Bindings, Binding{Handler: h, Listener: l})
	}
	sort.Slice(c.Bindings, func(i, j int) bool {
		return c.Bindings[i].Handler < c.Bindings[j].Handler
	})
	return c, nil
}

// IsMarkup reports whether v is a markup fragment: a *vdom.VNode, a
// templ.Component, or a non-empty homogeneous slice of either.
func IsMarkup(v any) bool {
	switch x := v.(type) {
	case *vdom.VNode:
		return x != nil
	case []*vdom.VNode:
		return len(x) > 0
	case templ.Component:
		return x != nil
	case []templ.Component:
		if len(x) == 0 {
			return false
		}
		for _, c := range x {
			if c == nil {
				return false
			}
		}
		return true
	case []any:
		return homogeneous(x)
	}
	return false
}

// homogeneous reports whether items is non-empty and holds only non-nil
// vnodes or only non-nil templ components.
func homogeneous(items []any) bool {
	if len(items) == 0 {
		return false
	}
	vnodes, comps := markupKind(items[0])
	for _, it := range items {
		isVNode, isComp := markupKind(it)
		if isVNode != vnodes || isComp != comps || !(isVNode || isComp) {
			return false
		}
	}
	return true
}

func markupKind(v any) (vnode, component bool) {
	switch x := v.(type) {
	case *vdom.VNode:
		return x != nil, false
	case templ.Component:
		return false, x != nil
	}
	return false, false
}

// renderMarkup replaces a markup fragment with its HTML string and returns
// every other value unchanged.
func renderMarkup(ctx context.Context, v any) (any, error) {
	if !IsMarkup(v) {
		return v, nil
	}

	var b strings.Builder
	switch x := v.(type) {
	case *vdom.VNode:
		return render.String(x)
	case []*vdom.VNode:
		html, err := render.String(vdom.Fragment(x))
		if err != nil {
			return nil, err
		}
		return html, nil
	case templ.Component:
		return renderComponent(ctx, x)
	case []templ.Component:
		for _, comp := range x {
			html, err := renderComponent(ctx, comp)
			if err != nil {
				return nil, err
			}
			b.WriteString(html)
		}
		return b.String(), nil
	case []any:
		for _, it := range x {
			html, err := renderMarkup(ctx, it)
			if err != nil {
				return nil, err
			}
			b.WriteString(html.(string))
		}
		return b.String(), nil
	}
	return v, nil
}

func renderComponent(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
