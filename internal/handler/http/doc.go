// Package http implements the HTTP transport of chronos.
//
// It wires the chi router, the signup and credential endpoints, the session
// endpoints and the auth pages. Tracing, access logging, compression, session
// extraction and the authorization gate run as middleware before a request
// reaches a handler.
package http
