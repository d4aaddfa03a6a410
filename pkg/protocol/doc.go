// Package protocol defines the messages exchanged between a server-side
// Field and the widget running in the browser.
//
// A session carries five message types:
//
//   - setOptions (server → client): push an options object into a widget
//   - listen / unlisten (server → client): start or stop forwarding a
//     native event
//   - event (client → server): a forwarded native event with its detail
//   - mount / unmount (client → server): the widget element appeared or
//     went away
//   - error (either direction)
//
// Every message is a single Message envelope discriminated by its Type.
// Two codecs are available and are negotiated through the WebSocket
// subprotocol:
//
//	mathfield.json     text frames, used by the bundled client
//	mathfield.msgpack  binary frames
package protocol
