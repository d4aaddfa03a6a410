// Package lifecycle is the minimal component scope used by mathfield
// components: hook slots for per-instance memoization, dependency-keyed
// layout effects that run in a commit phase after the rendered tree has been
// applied, and refs for mounted elements.
//
// The model is single-threaded per Owner. Render, Commit and Dispose for one
// instance must not run concurrently.
package lifecycle
