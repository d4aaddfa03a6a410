// Package clientdist embeds the browser runtime.
package clientdist

import _ "embed"

// MathfieldJS is the browser runtime that connects field elements to a
// server session. It is served at "/_mathfield/mathfield.js".
//
//go:embed mathfield.js
var MathfieldJS []byte
