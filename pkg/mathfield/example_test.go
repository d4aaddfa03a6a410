package mathfield_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/fieldtest"
	"github.com/vango-dev/mathfield/pkg/mathfield"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

func ExampleClassify() {
	cls, err := mathfield.Classify(context.Background(), vdom.Props{
		"className":   "eq",
		"readOnly":    true,
		"defaultMode": "math",
		"onCommit":    func(*dom.Event) {},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("options:", cls.Options.Keys())
	fmt.Println("passthrough:", cls.Passthrough.Keys())
	fmt.Println("handlers:", cls.Handled)
	// Output:
	// options: [defaultMode readOnly]
	// passthrough: [class]
	// handlers: [onCommit]
}

func ExampleOption() {
	node := vdom.El(mathfield.DefaultTag,
		vdom.Class("eq"),
		mathfield.ReadOnly(true),
		mathfield.OnCommit(func(*dom.Event) {}),
	)
	fmt.Println(node.Props.Keys())
	// Output:
	// [class onCommit readOnly]
}

func TestFieldThroughHarness(t *testing.T) {
	h := fieldtest.New(t, mathfield.WithID("f1"))

	var calls []string
	first := func(*dom.Event) { calls = append(calls, "first") }
	second := func(*dom.Event) { calls = append(calls, "second") }

	node := h.Render(vdom.Props{"className": "eq", "onInput": first})
	fieldtest.ExpectAttribute(t, node, "class", "eq")
	h.ExpectListening("input")

	h.Render(vdom.Props{"className": "eq", "onInput": second})
	h.Emit("input", nil)
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}

	h.Render(vdom.Props{"className": "eq"})
	h.ExpectListening()
	h.ExpectOptionsCalls(1)
}
