package memdom

import (
	"reflect"
	"testing"

	"github.com/vango-dev/mathfield/pkg/dom"
)

var (
	_ dom.Document     = (*Document)(nil)
	_ dom.Container    = (*Element)(nil)
	_ dom.Widget       = (*Element)(nil)
	_ dom.InputElement = (*Element)(nil)
)

func TestAppendRemoveChild(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	doc.Body().AppendChild(el)
	body := doc.Body().(*Element)
	if got := len(body.Children()); got != 1 {
		t.Fatalf("body children = %d, want 1", got)
	}
	if el.(*Element).Parent() != body {
		t.Error("parent not set")
	}

	doc.Body().RemoveChild(el)
	doc.Body().RemoveChild(el)
	if got := len(body.Children()); got != 0 {
		t.Fatalf("body children = %d, want 0", got)
	}
	if el.(*Element).Parent() != nil {
		t.Error("parent not cleared")
	}
}

func TestAppendChildReparents(t *testing.T) {
	a, b, c := newElement("div"), newElement("div"), newElement("span")
	a.AppendChild(c)
	b.AppendChild(c)

	if len(a.Children()) != 0 || len(b.Children()) != 1 || c.Parent() != b {
		t.Error("AppendChild should move the child to its new parent")
	}
}

func TestDispatchBubbling(t *testing.T) {
	parent := newElement("div")
	child := NewWidget("math-field")
	parent.AppendChild(child)

	var order []string
	child.AddEventListener("change", func(e *dom.Event) {
		order = append(order, "child")
		if e.Target != child || e.CurrentTarget != child {
			t.Error("target mismatch at child")
		}
	})
	parent.AddEventListener("change", func(e *dom.Event) {
		order = append(order, "parent")
		if e.CurrentTarget != parent {
			t.Error("current target mismatch at parent")
		}
	})

	child.Emit("change", nil)
	if !reflect.DeepEqual(order, []string{"child"}) {
		t.Errorf("non-bubbling event reached %v", order)
	}

	order = nil
	child.DispatchEvent(dom.NewCustomEvent("change", dom.EventInit{Bubbles: true}))
	if !reflect.DeepEqual(order, []string{"child", "parent"}) {
		t.Errorf("bubbling order = %v", order)
	}
}

func TestDispatchStopPropagationAndCancel(t *testing.T) {
	parent := newElement("div")
	child := newElement("input")
	parent.AppendChild(child)

	parentCalled := false
	child.AddEventListener("change", func(e *dom.Event) {
		e.StopPropagation()
		e.PreventDefault()
	})
	parent.AddEventListener("change", func(*dom.Event) { parentCalled = true })

	ok := child.DispatchEvent(dom.NewCustomEvent("change", dom.EventInit{Bubbles: true, Cancelable: true}))
	if ok {
		t.Error("DispatchEvent should report a prevented default")
	}
	if parentCalled {
		t.Error("propagation should stop at the child")
	}
}

func TestListenerRemovingItselfDuringDispatch(t *testing.T) {
	el := NewWidget("math-field")
	calls := 0
	var id dom.ListenerID
	id = el.AddEventListener("input", func(*dom.Event) {
		calls++
		el.RemoveEventListener("input", id)
	})

	el.Emit("input", nil)
	el.Emit("input", nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if el.ListenerCount("input") != 0 {
		t.Error("listener should be gone")
	}
}

func TestSetOptionsRecordsCopies(t *testing.T) {
	el := NewWidget("math-field")
	opts := map[string]any{"readOnly": true}
	el.SetOptions(opts)
	opts["readOnly"] = false

	calls := el.OptionsCalls()
	if len(calls) != 1 || calls[0]["readOnly"] != true {
		t.Errorf("OptionsCalls() = %v", calls)
	}
}

func TestAttributesAndProperties(t *testing.T) {
	el := newElement("math-field")
	el.SetAttribute("class", "eq")
	if v, ok := el.Attribute("class"); !ok || v != "eq" {
		t.Errorf("Attribute(class) = %q, %v", v, ok)
	}
	el.RemoveAttribute("class")
	if _, ok := el.Attribute("class"); ok {
		t.Error("attribute should be removed")
	}

	el.SetProperty("value", "x")
	if el.Value() != "x" {
		t.Errorf("Value() = %q", el.Value())
	}
}

func TestValueSetters(t *testing.T) {
	in := NewInput()

	if _, ok := in.OwnValueSetter(); ok {
		t.Error("fresh input has no own setter")
	}
	proto, ok := in.PrototypeValueSetter()
	if !ok {
		t.Fatal("input should have a prototype setter")
	}
	proto.SetValue("1")
	if in.Value() != "1" {
		t.Errorf("Value() = %q after prototype set", in.Value())
	}

	tracker := in.InterceptValue()
	own, ok := in.OwnValueSetter()
	if !ok || own.Same(proto) {
		t.Fatal("intercepting setter should be distinct from the prototype")
	}
	own.SetValue("2")
	if in.Value() != "2" || !reflect.DeepEqual(tracker.Observed(), []string{"2"}) {
		t.Errorf("intercepting setter did not forward/observe: %q %v", in.Value(), tracker.Observed())
	}

	in.SetOwnValueSetter(in.PrototypeSetter())
	own, _ = in.OwnValueSetter()
	if !own.Same(proto) {
		t.Error("prototype setter installed on the instance should compare Same")
	}

	if _, ok := newElement("div").PrototypeValueSetter(); ok {
		t.Error("div has no value setter")
	}
}
