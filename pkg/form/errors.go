package form

import "errors"

var (
	// ErrUnknownField is returned for change events naming no form field.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrValueType is returned when an event carries the wrong kind of value
	// for its field (for example a checkbox event for a text field).
	ErrValueType = errors.New("form: value type mismatch")
	// ErrSubmitDisabled is returned when Submit runs while the form is invalid.
	ErrSubmitDisabled = errors.New("form: submit disabled")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("form: submission in flight")
	// ErrNoSubmitter is returned when the form has nowhere to send values.
	ErrNoSubmitter = errors.New("form: submitter is not configured")
)

// serverMessenger is implemented by submission errors that carry the message
// returned by the remote endpoint.
type serverMessenger interface {
	error
	ServerMessage() string
}
