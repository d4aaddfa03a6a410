package mathfield

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/mathfield/pkg/dom"
)

// equalOptions configures the structural comparison of option objects.
// Elements (such as a keyboard container) compare by identity, NaNs equal
// each other, and nil and empty collections are interchangeable.
var equalOptions = cmp.Options{
	cmp.Comparer(func(a, b dom.Element) bool { return a == b }),
	cmpopts.EquateNaNs(),
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// OptionsEqual reports whether a and b are structurally equal.
func OptionsEqual(a, b Options) bool {
	return cmp.Equal(a, b, equalOptions)
}

// OptionsDiff returns a human-readable diff, empty when equal.
func OptionsDiff(a, b Options) string {
	return cmp.Diff(a, b, equalOptions)
}

// OptionUpdater pushes options into a widget only when they changed.
// Calling SetOptions on the widget resets its editing state (caret,
// selection), so an unchanged configuration must never be re-applied.
type OptionUpdater struct {
	target  dom.Widget
	applied Options
}

// Update applies next to w unless w already holds an equal configuration.
// A nil widget is skipped. It reports whether SetOptions was called.
func (u *OptionUpdater) Update(w dom.Widget, next Options) bool {
	if w == nil {
		return false
	}
	if u.target == w && u.applied != nil && OptionsEqual(u.applied, next) {
		return false
	}
	w.SetOptions(next)
	u.target = w
	u.applied = next
	return true
}

// Applied returns the last configuration pushed, or nil.
func (u *OptionUpdater) Applied() Options {
	return u.applied
}

// Reset forgets the last widget and configuration.
func (u *OptionUpdater) Reset() {
	u.target = nil
	u.applied = nil
}
