package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with an arbitrary tag. Custom elements such as
// "math-field" go through here.
// Arguments can be: nil, Attr, []Attr, Props, EventHandler, *VNode, []*VNode, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case Props:
			for _, k := range v.Keys() {
				node.setAttr(Attr{Key: k, Value: v[k]})
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

func Html(args ...any) *VNode   { return El("html", args...) }
func Head(args ...any) *VNode   { return El("head", args...) }
func Body(args ...any) *VNode   { return El("body", args...) }
func Title(args ...any) *VNode  { return El("title", args...) }
func Meta(args ...any) *VNode   { return El("meta", args...) }
func Script(args ...any) *VNode { return El("script", args...) }
func Main(args ...any) *VNode   { return El("main", args...) }
func H1(args ...any) *VNode     { return El("h1", args...) }
func Div(args ...any) *VNode    { return El("div", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
