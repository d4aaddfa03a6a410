// Package remote drives a math-field widget that lives in a browser from a
// server-side Field.
//
// A Session wraps one WebSocket connection. Each widget the page announces
// with a mount message gets a Widget proxy implementing dom.Widget:
// SetOptions is sent to the browser, adding the first listener for an event
// asks the browser to forward it, and removing the last one stops it.
// Forwarded events are dispatched to the proxy's listeners on the session's
// read goroutine, so a Field mounted on a Widget is only ever touched from
// that goroutine.
package remote
