// Package dom is the narrow DOM capability layer the mathfield adapter talks
// to.
//
// The adapter never touches a browser API directly. It creates elements,
// attaches and removes listeners, pushes options into the widget and, on the
// legacy path, force-sets an input value, all through the interfaces here.
// Implementations live in subpackages:
//
//   - memdom: in-memory document used for tests and server-side rendering
//   - jsdom: syscall/js binding for js/wasm builds
//
// and in package remote, which proxies a widget living in a browser over a
// WebSocket session.
package dom
