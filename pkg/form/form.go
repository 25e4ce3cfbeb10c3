package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Submitter delivers the form values to the remote endpoint. It returns the
// success message from the server; errors implementing ServerMessage() carry
// the server's failure message.
type Submitter interface {
	Submit(ctx context.Context, state State) (string, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, state State) (string, error)

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, state State) (string, error) {
	return fn(ctx, state)
}

// Option configures a Form.
type Option func(*Form)

// WithSchema overrides the validation schema.
func WithSchema(schema *validation.Schema) Option {
	return func(f *Form) {
		if schema != nil {
			f.schema = schema
		}
	}
}

// WithLogger sets the logger used for change and submit events.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithState seeds the form with values other than the defaults. Seeded values
// are not validated until they change, matching a freshly rendered form.
func WithState(state State) Option {
	return func(f *Form) {
		f.state = state
	}
}

// Form is the registration form component. It is safe for concurrent use.
type Form struct {
	mu        sync.Mutex
	schema    *validation.Schema
	submitter Submitter
	logger    *slog.Logger

	state    State
	errors   Errors
	outcome  Outcome
	enabled  bool
	inFlight bool
}

// New constructs a form that sends submissions through submitter.
func New(submitter Submitter, options ...Option) *Form {
	f := &Form{
		schema:    validation.Registration(),
		submitter: submitter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     DefaultState(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.errors = NewErrors(f.schema.Fields())
	f.enabled = f.schema.Valid(f.state.Values())
	return f
}

// Change applies a control edit: the value is stored, the changed field is
// re-validated and the enablement flag is recomputed.
func (f *Form) Change(evt ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.schema.Has(evt.Name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, evt.Name)
	}

	value := evt.value()
	if err := f.state.set(evt.Name, value); err != nil {
		return err
	}

	msg, err := f.schema.ValidateField(evt.Name, value)
	if err != nil {
		return fmt.Errorf("form: validate %s: %w", evt.Name, err)
	}
	f.errors[evt.Name] = msg
	f.enabled = f.schema.Valid(f.state.Values())

	f.logger.Debug("field changed",
		"field", evt.Name,
		"valid", msg == "",
		"enabled", f.enabled,
	)
	return nil
}

// Enabled reports whether the current values satisfy the whole schema.
func (f *Form) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// State returns a copy of the current values.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns a copy of the current per-field messages.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.clone()
}

// Outcome returns the result of the last submission.
func (f *Form) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Fields lists the form fields in display order.
func (f *Form) Fields() []string {
	return f.schema.Fields()
}

// Snapshot copies the whole form state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:      f.state,
		Errors:     f.errors.clone(),
		Outcome:    f.outcome,
		Enabled:    f.enabled,
		Submitting: f.inFlight,
	}
}

// Reset restores default values and clears messages and the last outcome.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = DefaultState()
	f.errors = NewErrors(f.schema.Fields())
	f.outcome = Outcome{}
	f.enabled = f.schema.Valid(f.state.Values())
}

// Submit sends the current values. A server rejection is reported through the
// returned Outcome with a nil error; transport failures set the Outcome and
// return the error as well.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	switch {
	case f.submitter == nil:
		f.mu.Unlock()
		return Outcome{}, ErrNoSubmitter
	case !f.enabled:
		outcome := f.outcome
		f.mu.Unlock()
		return outcome, ErrSubmitDisabled
	case f.inFlight:
		outcome := f.outcome
		f.mu.Unlock()
		return outcome, ErrSubmitInFlight
	}
	f.inFlight = true
	state := f.state
	f.mu.Unlock()

	message, err := f.submitter.Submit(ctx, state)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if err == nil {
		f.state = DefaultState()
		f.enabled = f.schema.Valid(f.state.Values())
		f.outcome = Outcome{Success: message}
		f.logger.Info("registration submitted", "username", state.Username)
		return f.outcome, nil
	}

	var serverErr serverMessenger
	if errors.As(err, &serverErr) {
		failure := serverErr.ServerMessage()
		if failure == "" {
			failure = serverErr.Error()
		}
		f.outcome = Outcome{Failure: failure}
		f.logger.Info("registration rejected", "username", state.Username, "message", failure)
		return f.outcome, nil
	}

	f.outcome = Outcome{Failure: err.Error()}
	f.logger.Warn("registration failed", "username", state.Username, "error", err)
	return f.outcome, fmt.Errorf("form: submit: %w", err)
}
