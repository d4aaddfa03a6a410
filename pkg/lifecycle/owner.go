package lifecycle

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Cleanup undoes an effect. It runs before the effect re-runs and when the
// owner is disposed.
type Cleanup func()

// Owner is the per-instance scope that holds hook state and layout effects.
//
// A component calls BeginRender at the top of every render, then calls its
// hooks (Memo, LayoutEffect) unconditionally and in the same order each time.
// After the host has applied the rendered tree, Commit runs the effects whose
// dependencies changed. Dispose runs every outstanding cleanup.
type Owner struct {
	mu sync.Mutex

	slots   []any
	slotIdx int

	effects []*layoutEffect

	disposed atomic.Bool
}

type layoutEffect struct {
	deps    []any
	fn      func() Cleanup
	cleanup Cleanup
	pending bool
	ran     bool
}

// NewOwner creates an empty owner.
func NewOwner() *Owner {
	return &Owner{}
}

// BeginRender resets the hook slot cursor.
func (o *Owner) BeginRender() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.slotIdx = 0
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// nextSlot returns the value stored in the next hook slot, or nil with
// fresh=true on the first render.
func (o *Owner) nextSlot() (value any, idx int, fresh bool) {
	idx = o.slotIdx
	o.slotIdx++
	if idx < len(o.slots) {
		return o.slots[idx], idx, false
	}
	o.slots = append(o.slots, nil)
	return nil, idx, true
}

// Memo returns the value produced by fn on the first render of the owner and
// the same value on every later render.
func Memo[T any](o *Owner, fn func() T) T {
	o.mu.Lock()
	v, idx, fresh := o.nextSlot()
	o.mu.Unlock()

	if !fresh {
		t, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("lifecycle: hook slot %d changed type: have %T", idx, v))
		}
		return t
	}

	t := fn()
	o.mu.Lock()
	o.slots[idx] = t
	o.mu.Unlock()
	return t
}

// LayoutEffect registers fn to run during the next Commit when any of deps
// differs from the previous render. A nil deps slice runs fn on every commit;
// an empty one runs it once after mount.
//
// Dependencies compare by identity: maps, slices, funcs, channels and
// pointers are equal only when they share the same underlying reference.
func (o *Owner) LayoutEffect(deps []any, fn func() Cleanup) {
	if o.disposed.Load() {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	v, idx, fresh := o.nextSlot()
	if fresh {
		e := &layoutEffect{deps: deps, fn: fn, pending: true}
		o.slots[idx] = e
		o.effects = append(o.effects, e)
		return
	}

	e, ok := v.(*layoutEffect)
	if !ok {
		panic(fmt.Sprintf("lifecycle: hook slot %d changed type: have %T", idx, v))
	}
	e.fn = fn
	if deps == nil || !e.ran || !sameDeps(e.deps, deps) {
		e.pending = true
	}
	e.deps = deps
}

// ReplaceDep substitutes next for every dependency identical to prev and
// schedules each affected effect for the next Commit. It lets a value that
// changes outside render, such as a bound element, re-run the effects keyed
// on it without a new render.
func (o *Owner) ReplaceDep(prev, next any) {
	if o.disposed.Load() || SameDep(prev, next) {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.effects {
		for i, d := range e.deps {
			if SameDep(d, prev) {
				e.deps[i] = next
				e.pending = true
			}
		}
	}
}

// Commit runs pending effects. Every pending cleanup runs before any effect
// body, so a listener detached by one effect is never attached twice by
// another.
func (o *Owner) Commit() {
	if o.disposed.Load() {
		return
	}

	o.mu.Lock()
	var pending []*layoutEffect
	for _, e := range o.effects {
		if e.pending {
			e.pending = false
			pending = append(pending, e)
		}
	}
	o.mu.Unlock()

	for _, e := range pending {
		if e.cleanup != nil {
			c := e.cleanup
			e.cleanup = nil
			c()
		}
	}
	for _, e := range pending {
		if o.disposed.Load() {
			return
		}
		e.cleanup = e.fn()
		e.ran = true
	}
}

// HasPendingEffects reports whether the next Commit would run anything.
func (o *Owner) HasPendingEffects() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.effects {
		if e.pending {
			return true
		}
	}
	return false
}

// Dispose runs outstanding cleanups in reverse registration order.
// Calling it more than once is a no-op.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	o.mu.Lock()
	effects := o.effects
	o.effects = nil
	o.slots = nil
	o.mu.Unlock()

	for i := len(effects) - 1; i >= 0; i-- {
		if c := effects[i].cleanup; c != nil {
			effects[i].cleanup = nil
			c()
		}
	}
}

func sameDeps(prev, next []any) bool {
	if prev == nil || len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !SameDep(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// SameDep reports whether two dependency values are identical.
func SameDep(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		if va.Kind() == reflect.Slice && va.Len() != vb.Len() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return false
}
