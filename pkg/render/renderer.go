package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/vango-dev/mathfield/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables newline-separated output for block children.
	// Should only be used in development as it increases output size.
	Pretty bool
}

// Renderer renders VNode trees to HTML.
// A Renderer holds no per-render state and may be reused.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	return &Renderer{config: config}
}

// String renders node with the default configuration.
func String(node *vdom.VNode) (string, error) {
	return NewRenderer(RendererConfig{}).RenderToString(node)
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, EscapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	if node.Tag == "" {
		return fmt.Errorf("element without tag")
	}
	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		return r.newline(w)
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	return r.newline(w)
}

// renderAttributes writes props that have an attribute form. Callbacks and
// values with no scalar representation are skipped.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	for _, key := range node.Props.Keys() {
		value := node.Props[key]

		if b, ok := value.(bool); ok && isBooleanAttr(key) {
			if !b {
				continue
			}
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
			continue
		}

		s, ok := AttrString(value)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, EscapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) newline(w io.Writer) error {
	if !r.config.Pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// AttrString converts a prop value to its attribute string.
// It reports false for nil, callbacks and composite values.
func AttrString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Struct, reflect.Pointer, reflect.Chan, reflect.Interface:
		return "", false
	default:
		return fmt.Sprintf("%v", value), true
	}
}

var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"read-only": true,
	"required":  true,
	"selected":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
