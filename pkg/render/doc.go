// Package render renders vdom trees to HTML strings.
//
// It is the "render to string" capability used for server-side pages and for
// turning markup fragments passed as widget options into the HTML strings the
// widget expects.
package render
