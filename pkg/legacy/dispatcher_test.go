package legacy

import (
	"testing"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/dom/memdom"
)

func TestDispatchUnboundIsNoop(t *testing.T) {
	d := NewInputDispatcher(nil)
	if d.Dispatch("change", Detail{Value: "x"}) {
		t.Error("Dispatch should not fire while the ref is unbound")
	}
}

func TestDispatchUsesPrototypeSetter(t *testing.T) {
	in := memdom.NewInput()
	d := NewInputDispatcher(nil)
	d.Ref().Set(in)

	var got *dom.Event
	in.AddEventListener("change", func(e *dom.Event) { got = e })

	if !d.Dispatch("change", Detail{Value: "x^2", Extra: map[string]any{"mode": "math"}}) {
		t.Fatal("Dispatch returned false")
	}
	if in.Value() != "x^2" {
		t.Errorf("value = %q, want %q", in.Value(), "x^2")
	}
	if got == nil {
		t.Fatal("listener not called")
	}
	if !got.Bubbles || !got.Cancelable {
		t.Errorf("bubbles=%v cancelable=%v, want both true", got.Bubbles, got.Cancelable)
	}
	detail := got.DetailMap()
	if detail["value"] != "x^2" || detail["mode"] != "math" {
		t.Errorf("detail = %v", detail)
	}
}

func TestDispatchPrefersPatchedInstanceSetter(t *testing.T) {
	in := memdom.NewInput()
	intercept := in.InterceptValue()
	d := NewInputDispatcher(nil)
	d.Ref().Set(in)

	d.Dispatch("input", Detail{Value: "a"})

	if obs := intercept.Observed(); len(obs) != 1 || obs[0] != "a" {
		t.Errorf("instance setter observed %v, want [a]", obs)
	}
	if in.Value() != "a" {
		t.Errorf("value = %q, want a", in.Value())
	}
}

func TestValueSetterSkipsInstanceCopyOfPrototype(t *testing.T) {
	in := memdom.NewInput()
	in.SetOwnValueSetter(in.PrototypeSetter())

	proto, _ := in.PrototypeValueSetter()
	if s := ValueSetter(in); !s.Same(proto) {
		t.Error("an instance setter identical to the prototype's should resolve to the prototype")
	}
}

func TestDispatchBubblesToAncestors(t *testing.T) {
	doc := memdom.NewDocument()
	in := memdom.NewInput()
	doc.Body().AppendChild(in)

	var seen int
	doc.Body().AddEventListener("change", func(*dom.Event) { seen++ })

	d := NewInputDispatcher(nil)
	d.Ref().Set(in)
	d.Dispatch("change", Detail{Value: "1"})

	if seen != 1 {
		t.Errorf("body saw %d events, want 1", seen)
	}
}

func TestDispatchMissingSetterPanics(t *testing.T) {
	el := memdom.NewWidget("div")
	d := NewInputDispatcher(nil)
	d.Ref().Set(el)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for element without a value setter")
		}
	}()
	d.Dispatch("change", Detail{Value: "x"})
}
