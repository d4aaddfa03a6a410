// Package errors provides structured, user-facing errors for the mathfield
// command and server.
//
// Each error carries a registered code, a category, and optional detail and
// suggestion text:
//
//	err := errors.New("E102").
//	    WithDetail("port must be between 1 and 65535, got 0").
//	    WithSuggestion("Set server.port in mathfield.yaml")
//	errors.PrintError(err)
//
// Codes are grouped by range:
//
//   - E1xx: configuration
//   - E2xx: server and sessions
//   - E3xx: asset publishing
//   - E4xx: wire protocol
//   - E5xx: command line
//
// Error implements Unwrap, so errors.Is and errors.As see wrapped causes.
package errors
