package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/mathfield/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	html, err := String(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderCustomElement(t *testing.T) {
	node := vdom.El("math-field",
		vdom.Class("eq"),
		vdom.Data("mf-id", "f1"),
		vdom.Props{"read-only": true, "tabindex": 0},
		vdom.Text("x^2"),
	)

	html, err := String(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<math-field class="eq" data-mf-id="f1" read-only tabindex="0">x^2</math-field>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderSkipsCallbacksAndComposites(t *testing.T) {
	node := vdom.El("math-field", vdom.Props{
		"onCommit": func() {},
		"macros":   map[string]any{"RR": `\mathbb{R}`},
		"hidden":   false,
		"id":       "m",
	})

	html, err := String(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<math-field id="m"></math-field>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderVoidElement(t *testing.T) {
	html, err := String(vdom.Input(vdom.Type("hidden"), vdom.Value(`a"b`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<input type="hidden" value="a&quot;b">` {
		t.Errorf("got %q", html)
	}
}

func TestRenderFragmentAndRaw(t *testing.T) {
	node := vdom.Fragment(vdom.Span("a"), vdom.Raw("<b>b</b>"), "c")

	html, err := String(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<span>a</span><b>b</b>c` {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Div(vdom.P("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div><p>x</p>\n</div>\n" {
		t.Errorf("got %q", html)
	}
}

func TestRenderMissingTag(t *testing.T) {
	if _, err := String(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Fatal("expected error for element without tag")
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{"s", "s", true},
		{true, "true", true},
		{3, "3", true},
		{int64(4), "4", true},
		{1.5, "1.5", true},
		{uint8(7), "7", true},
		{nil, "", false},
		{func() {}, "", false},
		{[]string{"a"}, "", false},
		{map[string]any{}, "", false},
	}
	for _, tt := range tests {
		got, ok := AttrString(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AttrString(%#v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
