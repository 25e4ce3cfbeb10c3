// Package client submits registration payloads to the remote endpoint. The
// endpoint answers with a JSON object carrying a "message" field on both
// success and failure; failures surface as *ServerError so callers can show
// the server's message.
package client
