// Package server hosts math fields over HTTP.
//
// It serves a server-rendered page containing field host elements, the
// browser runtime that connects those elements back to the server, and the
// WebSocket endpoint the runtime talks to. Each connection is a
// remote.Session; every widget the page mounts gets its own
// mathfield.Field whose options and listeners are driven from Go.
//
//	srv := server.New(server.FromConfig(cfg),
//		server.WithLogger(logger),
//		server.WithProps(func(id string) vdom.Props { ... }),
//	)
//	err := srv.ListenAndServe(ctx)
//
// Routes:
//
//	GET /                          demo page
//	GET /_mathfield/mathfield.js   browser runtime
//	GET /_mathfield/ws             field session (WebSocket)
//	GET /metrics                   Prometheus metrics
//	GET /healthz                   liveness
package server
