// Package openapi carries the OpenAPI 3 contract of the registration
// endpoint. The document is embedded and parsed with kin-openapi; the
// resulting Contract validates request payloads against the request body
// schema and derives the form model from the x-regform extensions.
package openapi
