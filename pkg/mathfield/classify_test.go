package mathfield

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

func TestClassifyScenario(t *testing.T) {
	var calls int
	props := vdom.Props{
		"value":     "x^2",
		"onCommit":  func(*dom.Event) { calls++ },
		"className": "foo",
	}

	cls, err := Classify(context.Background(), props)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(cls.Options) != 0 {
		t.Errorf("Options = %v, want empty", cls.Options)
	}
	wantPass := vdom.Props{"value": "x^2", "class": "foo"}
	if diff := cmp.Diff(wantPass, cls.Passthrough); diff != "" {
		t.Errorf("Passthrough mismatch (-want +got):\n%s", diff)
	}
	if len(cls.Bindings) != 1 {
		t.Fatalf("Bindings = %d, want 1", len(cls.Bindings))
	}
	b := cls.Bindings[0]
	if b.Handler != HandleCommit || b.Handler.Event() != "change" {
		t.Errorf("binding = %s -> %s, want onCommit -> change", b.Handler, b.Handler.Event())
	}
	b.Listener(dom.NewEvent("change"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClassifyPartitionIsTotalAndDisjoint(t *testing.T) {
	props := vdom.Props{
		"readOnly":            true,
		"virtualKeyboardMode": "manual",
		"macros":              map[string]string{"RR": `\mathbb{R}`},
		"onInput":             func(*dom.Event) {},
		"onFocus":             func() {},
		"onBlur":              "not a function",
		"className":           "eq",
		"htmlFor":             "label",
		"id":                  "f1",
		"tabindex":            0,
	}

	cls, err := Classify(context.Background(), props)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	seen := make(map[string]string)
	mark := func(part string, keys []string) {
		for _, k := range keys {
			if prev, dup := seen[k]; dup {
				t.Errorf("%q in both %s and %s", k, prev, part)
			}
			seen[k] = part
		}
	}
	mark("options", cls.Options.Keys())
	mark("passthrough", cls.Passthrough.Keys())
	mark("handlers", cls.Handled)

	for key := range props {
		if _, ok := seen[Normalize(key)]; !ok {
			t.Errorf("%q (normalized %q) missing from every partition", key, Normalize(key))
		}
	}
	if len(seen) != len(props) {
		t.Errorf("partitions hold %d keys, want %d", len(seen), len(props))
	}

	if got := len(cls.Bindings); got != 2 {
		t.Errorf("Bindings = %d, want 2 (onBlur is not a function)", got)
	}
}

func TestClassifyLastWriterWins(t *testing.T) {
	cls, err := Classify(context.Background(), vdom.Props{
		"class":     "a",
		"className": "b",
	})
	if err != nil {
		t.Fatal(err)
	}
	// "className" sorts after "class", so it is applied last.
	if got := cls.Passthrough["class"]; got != "b" {
		t.Errorf("class = %v, want b", got)
	}
}

func TestClassifyRendersMarkupOptions(t *testing.T) {
	glyph := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<svg></svg>")
		return err
	})

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"plain string", "&#x2328;", "&#x2328;"},
		{"vnode", vdom.Span(vdom.Class("kb"), "K"), `<span class="kb">K</span>`},
		{"vnode slice", []*vdom.VNode{vdom.Span("a"), vdom.Span("b")}, "<span>a</span><span>b</span>"},
		{"templ component", templ.Component(glyph), "<svg></svg>"},
		{"component slice", []templ.Component{glyph, glyph}, "<svg></svg><svg></svg>"},
		{"homogeneous any slice", []any{vdom.Span("a"), vdom.Span("b")}, "<span>a</span><span>b</span>"},
		{"mixed any slice", []any{vdom.Span("a"), "b"}, []any{vdom.Span("a"), "b"}},
		{"any slice with nil vnode", []any{(*vdom.VNode)(nil)}, []any{(*vdom.VNode)(nil)}},
		{"any slice with a nil among vnodes", []any{vdom.Span("a"), (*vdom.VNode)(nil)}, []any{vdom.Span("a"), (*vdom.VNode)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Classify(context.Background(), vdom.Props{
				"virtualKeyboardToggleGlyph": tt.value,
			})
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			got, _ := cls.Options.Get(OptVirtualKeyboardToggleGlyph)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyNilComponentIsNotMarkup(t *testing.T) {
	glyph := templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
	value := []templ.Component{glyph, nil}

	if IsMarkup(value) {
		t.Fatal("slice with a nil component reported as markup")
	}
	cls, err := Classify(context.Background(), vdom.Props{"virtualKeyboardToggleGlyph": value})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	got, _ := cls.Options.Get(OptVirtualKeyboardToggleGlyph)
	comps, ok := got.([]templ.Component)
	if !ok || len(comps) != 2 || comps[1] != nil {
		t.Errorf("got %#v, want the slice unchanged", got)
	}
}

func TestClassifyMarkupError(t *testing.T) {
	boom := errors.New("boom")
	bad := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	_, err := Classify(context.Background(), vdom.Props{"virtualKeyboardToggleGlyph": templ.Component(bad)})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	props := vdom.Props{"readOnly": true, "class": "x", "className": "y", "locale": "fr"}
	a, _ := Classify(context.Background(), props)
	b, _ := Classify(context.Background(), props)
	if !OptionsEqual(a.Options, b.Options) {
		t.Error("options differ between identical runs")
	}
	if diff := cmp.Diff(a.Passthrough, b.Passthrough); diff != "" {
		t.Errorf("passthrough differs:\n%s", diff)
	}
}

func TestLookupTables(t *testing.T) {
	for _, k := range AllOptions() {
		got, ok := LookupOption(k.String())
		if !ok || got != k {
			t.Errorf("LookupOption(%q) = %v, %v", k.String(), got, ok)
		}
		if _, clash := LookupHandler(k.String()); clash {
			t.Errorf("%q is both an option and a handler", k)
		}
	}
	for _, h := range AllHandlers() {
		got, ok := LookupHandler(h.Prop())
		if !ok || got != h {
			t.Errorf("LookupHandler(%q) = %v, %v", h.Prop(), got, ok)
		}
		if h.Event() == "" {
			t.Errorf("%s has no event", h)
		}
	}
	if len(AllHandlers()) != 13 {
		t.Errorf("handlers = %d, want 13", len(AllHandlers()))
	}
	if OptionKey(0).Valid() || Handler(0).Valid() {
		t.Error("zero values must be invalid")
	}
}
