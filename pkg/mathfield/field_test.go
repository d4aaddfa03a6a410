package mathfield

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/dom/memdom"
	"github.com/vango-dev/mathfield/pkg/legacy"
	"github.com/vango-dev/mathfield/pkg/render"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

type countingObserver struct {
	applied, skipped   int
	attached, detached int
	dispatched         []string
}

func (c *countingObserver) OptionsApplied()          { c.applied++ }
func (c *countingObserver) OptionsSkipped()          { c.skipped++ }
func (c *countingObserver) ListenersAttached(n int)  { c.attached += n }
func (c *countingObserver) ListenersDetached(n int)  { c.detached += n }
func (c *countingObserver) EventDispatched(e string) { c.dispatched = append(c.dispatched, e) }

func mustRender(t *testing.T, f *Field, props vdom.Props) *vdom.VNode {
	t.Helper()
	node, err := f.Render(context.Background(), props)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return node
}

func TestFieldRenderHost(t *testing.T) {
	f := New(WithID("f1"))
	node := mustRender(t, f, vdom.Props{
		"className": "eq",
		"readOnly":  true,
		"onInput":   func(*dom.Event) {},
	})

	html, err := render.String(node)
	if err != nil {
		t.Fatal(err)
	}
	want := `<math-field class="eq" data-mf-id="f1"></math-field>`
	if html != want {
		t.Errorf("html = %s, want %s", html, want)
	}
}

func TestFieldCommitCallbackFiresOnce(t *testing.T) {
	obs := &countingObserver{}
	f := New(WithMetrics(obs))
	w := memdom.NewWidget(DefaultTag)

	var got []*dom.Event
	mustRender(t, f, vdom.Props{"onCommit": func(e *dom.Event) { got = append(got, e) }})
	f.Mount(w)
	f.Commit()

	ev := w.Emit("change", map[string]any{"value": "x^2"})
	if len(got) != 1 || got[0] != ev {
		t.Fatalf("onCommit called %d times, want once with the native event", len(got))
	}
	if obs.attached != 1 || len(obs.dispatched) != 1 || obs.dispatched[0] != "change" {
		t.Errorf("observer = %+v", obs)
	}
}

func TestFieldSwappedCallbackOnlyCallsNew(t *testing.T) {
	f := New()
	w := memdom.NewWidget(DefaultTag)

	var old, fresh int
	mustRender(t, f, vdom.Props{"onCommit": func(*dom.Event) { old++ }})
	f.Mount(w)
	f.Commit()

	mustRender(t, f, vdom.Props{"onCommit": func(*dom.Event) { fresh++ }})
	f.Commit()

	w.Emit("change", nil)
	if old != 0 || fresh != 1 {
		t.Errorf("old=%d fresh=%d, want 0 and 1", old, fresh)
	}
	if n := w.ListenerCount("change"); n != 1 {
		t.Errorf("change listeners = %d, want 1", n)
	}
}

func TestFieldUnmountDetachesListeners(t *testing.T) {
	f := New()
	w := memdom.NewWidget(DefaultTag)

	var calls int
	mustRender(t, f, vdom.Props{"onCommit": func(*dom.Event) { calls++ }, "onInput": func() { calls++ }})
	f.Mount(w)
	f.Commit()

	f.Unmount()
	f.Unmount()

	w.Emit("change", nil)
	w.Emit("input", nil)
	if calls != 0 {
		t.Errorf("callbacks fired %d times after Unmount", calls)
	}
	if types := w.ListenedTypes(); len(types) != 0 {
		t.Errorf("listeners left for %v", types)
	}
	if f.Widget() != nil {
		t.Error("Widget should be nil after Unmount")
	}
	if _, err := f.Render(context.Background(), nil); err != ErrUnmounted {
		t.Errorf("Render after Unmount = %v, want ErrUnmounted", err)
	}
}

func TestFieldOptionsPushedOnlyOnChange(t *testing.T) {
	obs := &countingObserver{}
	f := New(WithMetrics(obs))
	w := memdom.NewWidget(DefaultTag)

	mustRender(t, f, vdom.Props{"readOnly": true, "className": "a"})
	f.Mount(w)
	f.Commit()

	// A new props object with equal options must not reset the widget.
	mustRender(t, f, vdom.Props{"readOnly": true, "className": "b"})
	f.Commit()

	mustRender(t, f, vdom.Props{"readOnly": false})
	f.Commit()

	calls := w.OptionsCalls()
	if len(calls) != 2 {
		t.Fatalf("SetOptions calls = %d, want 2: %v", len(calls), calls)
	}
	if calls[0]["readOnly"] != true || calls[1]["readOnly"] != false {
		t.Errorf("calls = %v", calls)
	}
	if obs.applied != 2 || obs.skipped != 1 {
		t.Errorf("applied=%d skipped=%d, want 2 and 1", obs.applied, obs.skipped)
	}
}

func TestFieldCommitBeforeMountIsNoop(t *testing.T) {
	f := New()
	mustRender(t, f, vdom.Props{"readOnly": true, "onCommit": func() {}})
	f.Commit()

	w := memdom.NewWidget(DefaultTag)
	mustRender(t, f, vdom.Props{"readOnly": true, "onCommit": func() {}})
	f.Mount(w)
	f.Commit()

	if len(w.OptionsCalls()) != 1 {
		t.Errorf("SetOptions calls = %d, want 1", len(w.OptionsCalls()))
	}
	if w.ListenerCount("change") != 1 {
		t.Errorf("change listeners = %d, want 1", w.ListenerCount("change"))
	}
}

func TestFieldMountAfterCommitWithoutRender(t *testing.T) {
	f := New()
	calls := 0
	mustRender(t, f, vdom.Props{"readOnly": true, "onCommit": func() { calls++ }})
	f.Commit()

	w := memdom.NewWidget(DefaultTag)
	f.Mount(w)
	f.Commit()
	w.Emit("change", nil)

	if len(w.OptionsCalls()) != 1 {
		t.Errorf("SetOptions calls = %d, want 1", len(w.OptionsCalls()))
	}
	if w.ListenerCount("change") != 1 {
		t.Errorf("change listeners = %d, want 1", w.ListenerCount("change"))
	}
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}
}

func TestFieldRemountMovesListenersAndOptions(t *testing.T) {
	f := New(WithSyntheticInput())
	w1 := memdom.NewWidget(DefaultTag)
	w2 := memdom.NewWidget(DefaultTag)

	mustRender(t, f, vdom.Props{"readOnly": true, "onCommit": func() {}})
	f.Mount(w1)
	f.Commit()
	if w1.ListenerCount("change") != 1 || w1.ListenerCount("input") != 1 {
		t.Fatalf("w1 listeners change=%d input=%d, want 1 and 1",
			w1.ListenerCount("change"), w1.ListenerCount("input"))
	}

	f.Mount(w2)
	f.Commit()

	if n := w1.ListenerCount("change") + w1.ListenerCount("input"); n != 0 {
		t.Errorf("w1 listeners = %d, want 0", n)
	}
	if w2.ListenerCount("change") != 1 || w2.ListenerCount("input") != 1 {
		t.Errorf("w2 listeners change=%d input=%d, want 1 and 1",
			w2.ListenerCount("change"), w2.ListenerCount("input"))
	}
	if len(w2.OptionsCalls()) != 1 {
		t.Errorf("w2 SetOptions calls = %d, want 1", len(w2.OptionsCalls()))
	}

	f.Mount(w2)
	f.Commit()
	if len(w2.OptionsCalls()) != 1 || w2.ListenerCount("change") != 1 {
		t.Error("mounting the same widget again should not re-run effects")
	}

	mustRender(t, f, vdom.Props{"readOnly": true, "onCommit": func() {}})
	f.Commit()
	if len(w2.OptionsCalls()) != 1 {
		t.Errorf("w2 SetOptions calls = %d after equal render, want 1", len(w2.OptionsCalls()))
	}
}

func TestFieldSyntheticInputUsesLaterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := New(WithSyntheticInput(), WithLogger(logger))
	f.Dispatcher().Ref().Set(memdom.NewInput())
	if !f.Dispatcher().Dispatch("change", legacy.Detail{Value: "x"}) {
		t.Fatal("Dispatch on a bound input returned false")
	}

	if !strings.Contains(buf.String(), "synthetic-input") {
		t.Errorf("log = %q, want dispatcher output on the configured logger", buf.String())
	}
}

func TestFieldKeyboardContainer(t *testing.T) {
	doc := memdom.NewDocument()
	body := doc.Body().(*memdom.Element)
	f := New(WithDocument(doc), WithKeyboardContainer())
	w := memdom.NewWidget(DefaultTag)

	mustRender(t, f, nil)
	f.Mount(w)
	f.Commit()

	if len(body.Children()) != 1 {
		t.Fatalf("body children = %d, want the keyboard container", len(body.Children()))
	}
	calls := w.OptionsCalls()
	if len(calls) != 1 || calls[0]["virtualKeyboardContainer"] != dom.Element(body.Children()[0]) {
		t.Errorf("virtualKeyboardContainer not pushed: %v", calls)
	}

	mustRender(t, f, vdom.Props{})
	f.Commit()
	if len(w.OptionsCalls()) != 1 {
		t.Error("stable container should not trigger another push")
	}

	f.Unmount()
	if len(body.Children()) != 0 {
		t.Error("container should be removed on Unmount")
	}
}

func TestFieldSyntheticInput(t *testing.T) {
	f := New(WithSyntheticInput())
	node := mustRender(t, f, nil)

	html, _ := render.String(node)
	if !strings.Contains(html, `<input hidden type="hidden">`) {
		t.Errorf("html = %s, want a hidden input", html)
	}

	w := memdom.NewWidget(DefaultTag)
	in := memdom.NewInput()
	f.Dispatcher().Ref().Set(in)

	var changes []string
	in.AddEventListener("change", func(e *dom.Event) {
		changes = append(changes, e.DetailMap()["value"].(string))
	})

	f.Mount(w)
	f.Commit()
	w.Emit("input", map[string]any{"value": "\\frac{1}{2}"})

	if len(changes) != 1 || changes[0] != "\\frac{1}{2}" {
		t.Errorf("changes = %v", changes)
	}
	if in.Value() != "\\frac{1}{2}" {
		t.Errorf("hidden input value = %q", in.Value())
	}

	f.Unmount()
	w.Emit("input", map[string]any{"value": "y"})
	if len(changes) != 1 {
		t.Error("input mirrored after Unmount")
	}
}
