package render

import (
	"github.com/goliatone/go-regform/pkg/form"
)

// RenderOptions carry per-request data. The zero value renders a pristine
// form posting to the model endpoint.
type RenderOptions struct {
	// Action overrides the form action URL. Browser renderers post back to
	// the serving handler rather than the remote endpoint.
	Action string
	// Method overrides the HTTP method declared by the model.
	Method string
	// Snapshot supplies values, validation messages, the submission
	// outcome and the enablement flag.
	Snapshot *form.Snapshot
}
