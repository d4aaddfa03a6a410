package lifecycle

import (
	"reflect"
	"testing"
)

func TestLayoutEffectRunsOnCommitOnly(t *testing.T) {
	o := NewOwner()
	runs := 0

	o.BeginRender()
	o.LayoutEffect([]any{}, func() Cleanup {
		runs++
		return nil
	})
	if runs != 0 {
		t.Fatal("effect must not run during render")
	}
	if !o.HasPendingEffects() {
		t.Fatal("effect should be pending after first render")
	}

	o.Commit()
	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}

	o.BeginRender()
	o.LayoutEffect([]any{}, func() Cleanup {
		runs++
		return nil
	})
	o.Commit()
	if runs != 1 {
		t.Errorf("empty deps should run once, ran %d times", runs)
	}
}

func TestLayoutEffectDepsChange(t *testing.T) {
	o := NewOwner()
	var log []string

	render := func(dep any) {
		o.BeginRender()
		o.LayoutEffect([]any{dep}, func() Cleanup {
			log = append(log, "run")
			return func() { log = append(log, "cleanup") }
		})
		o.Commit()
	}

	render(1)
	render(1)
	render(2)
	o.Dispose()
	o.Dispose()

	want := []string{"run", "cleanup", "run", "cleanup"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestLayoutEffectNilDepsRunsEveryCommit(t *testing.T) {
	o := NewOwner()
	runs := 0
	for i := 0; i < 3; i++ {
		o.BeginRender()
		o.LayoutEffect(nil, func() Cleanup {
			runs++
			return nil
		})
		o.Commit()
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestCommitRunsAllCleanupsBeforeBodies(t *testing.T) {
	o := NewOwner()
	var log []string

	render := func(dep int) {
		o.BeginRender()
		o.LayoutEffect([]any{dep}, func() Cleanup {
			log = append(log, "a-run")
			return func() { log = append(log, "a-cleanup") }
		})
		o.LayoutEffect([]any{dep}, func() Cleanup {
			log = append(log, "b-run")
			return func() { log = append(log, "b-cleanup") }
		})
		o.Commit()
	}

	render(1)
	log = nil
	render(2)

	want := []string{"a-cleanup", "b-cleanup", "a-run", "b-run"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestDisposeRunsCleanupsInReverse(t *testing.T) {
	o := NewOwner()
	var log []string

	o.BeginRender()
	o.LayoutEffect([]any{}, func() Cleanup { return func() { log = append(log, "first") } })
	o.LayoutEffect([]any{}, func() Cleanup { return func() { log = append(log, "second") } })
	o.Commit()
	o.Dispose()

	if !reflect.DeepEqual(log, []string{"second", "first"}) {
		t.Errorf("log = %v", log)
	}
	if !o.IsDisposed() {
		t.Error("IsDisposed should be true")
	}

	o.BeginRender()
	o.LayoutEffect(nil, func() Cleanup {
		t.Error("effects must not run after dispose")
		return nil
	})
	o.Commit()
}

func TestMemoStableAcrossRenders(t *testing.T) {
	o := NewOwner()
	calls := 0
	newVal := func() *int {
		calls++
		v := calls
		return &v
	}

	o.BeginRender()
	first := Memo(o, newVal)
	o.BeginRender()
	second := Memo(o, newVal)

	if first != second || calls != 1 {
		t.Errorf("Memo should compute once: calls=%d same=%v", calls, first == second)
	}
}

func TestMemoTypeChangePanics(t *testing.T) {
	o := NewOwner()
	o.BeginRender()
	Memo(o, func() int { return 1 })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on hook order violation")
		}
	}()
	o.BeginRender()
	Memo(o, func() string { return "x" })
}

func TestReplaceDepReschedulesWithoutRender(t *testing.T) {
	o := NewOwner()
	var seen []string
	target := "a"

	render := func(dep string) {
		o.BeginRender()
		o.LayoutEffect([]any{dep}, func() Cleanup {
			seen = append(seen, "run "+target)
			return func() { seen = append(seen, "cleanup") }
		})
		o.LayoutEffect([]any{}, func() Cleanup {
			seen = append(seen, "once")
			return nil
		})
	}

	render(target)
	o.Commit()

	target = "b"
	o.ReplaceDep("a", "b")
	if !o.HasPendingEffects() {
		t.Fatal("ReplaceDep should schedule the effect keyed on the old value")
	}
	o.Commit()

	want := []string{"run a", "once", "cleanup", "run b"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("got %v, want %v", seen, want)
	}

	render("b")
	if o.HasPendingEffects() {
		t.Error("rendering with the replaced value should not reschedule")
	}

	o.ReplaceDep("b", "b")
	o.ReplaceDep("zzz", "c")
	if o.HasPendingEffects() {
		t.Error("identical or unknown deps should not schedule anything")
	}
}

func TestSameDep(t *testing.T) {
	m := map[string]any{"a": 1}
	m2 := map[string]any{"a": 1}
	s := []int{1, 2}
	p := &struct{}{}
	f := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 1, false},
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"different types", 1, int64(1), false},
		{"same map", m, m, true},
		{"equal but distinct maps", m, m2, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:1], false},
		{"same pointer", p, p, true},
		{"same func", f, f, true},
		{"strings", "a", "a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDep(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRef(t *testing.T) {
	r := NewRef[*int](nil)
	if r.IsSet() {
		t.Fatal("new ref should be unset")
	}
	v := 3
	r.Set(&v)
	if got, ok := r.Get(); !ok || got != &v || r.Current() != &v {
		t.Error("Set/Get mismatch")
	}
	r.Clear()
	if r.IsSet() || r.Current() != nil {
		t.Error("Clear should reset")
	}
}
