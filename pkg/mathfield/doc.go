// Package mathfield adapts the math-field web component to a declarative
// props interface.
//
// Every render splits the incoming props three ways:
//
//   - options (readOnly, virtualKeyboardMode, macros, ...) are collected into
//     one configuration object and pushed into the widget with SetOptions,
//     but only when it differs structurally from the last one pushed,
//     because SetOptions resets the caret and selection;
//   - callback props (onCommit, onInput, ...) are bound as native listeners
//     for the matching widget events and re-bound whenever the props change;
//   - everything else is rendered as attributes on the host element.
//
// Option values that are markup fragments (a *vdom.VNode, a templ.Component,
// or a slice of either) are rendered to HTML before being pushed.
//
// The widget's own mount and unmount events have no callback prop. Hosts
// that need them should observe the element directly.
package mathfield
