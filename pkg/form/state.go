package form

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// State holds the current value of every field. The JSON encoding is the
// payload sent to the registration endpoint.
type State struct {
	Username    string `json:"username"`
	FavLanguage string `json:"favLanguage"`
	FavFood     string `json:"favFood"`
	Agreement   bool   `json:"agreement"`
}

// DefaultState returns the initial field values.
func DefaultState() State {
	return State{}
}

// Values exposes the state as a generic map keyed by field name.
func (s State) Values() map[string]any {
	return map[string]any{
		model.FieldUsername:    s.Username,
		model.FieldFavLanguage: s.FavLanguage,
		model.FieldFavFood:     s.FavFood,
		model.FieldAgreement:   s.Agreement,
	}
}

// Get returns the value stored for name.
func (s State) Get(name string) (any, bool) {
	switch name {
	case model.FieldUsername:
		return s.Username, true
	case model.FieldFavLanguage:
		return s.FavLanguage, true
	case model.FieldFavFood:
		return s.FavFood, true
	case model.FieldAgreement:
		return s.Agreement, true
	default:
		return nil, false
	}
}

// String returns the textual value for name; booleans render as true/false.
func (s State) String(name string) string {
	value, ok := s.Get(name)
	if !ok {
		return ""
	}
	return fmt.Sprint(value)
}

func (s *State) set(name string, value any) error {
	switch name {
	case model.FieldUsername, model.FieldFavLanguage, model.FieldFavFood:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects text, got %T", ErrValueType, name, value)
		}
		switch name {
		case model.FieldUsername:
			s.Username = str
		case model.FieldFavLanguage:
			s.FavLanguage = str
		default:
			s.FavFood = str
		}
	case model.FieldAgreement:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean, got %T", ErrValueType, name, value)
		}
		s.Agreement = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Errors maps every field name to its current validation message. An empty
// message means the field passed its last validation.
type Errors map[string]string

// NewErrors returns an error state with an empty message for every field.
func NewErrors(fields []string) Errors {
	errs := make(Errors, len(fields))
	for _, name := range fields {
		errs[name] = ""
	}
	return errs
}

// Get returns the message for name.
func (e Errors) Get(name string) string {
	return e[name]
}

// Any reports whether at least one field currently shows a message.
func (e Errors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Outcome is the result of the last submission attempt. At most one of
// Success and Failure is set.
type Outcome struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// Succeeded reports whether the last submission succeeded.
func (o Outcome) Succeeded() bool {
	return o.Success != ""
}

// Failed reports whether the last submission failed.
func (o Outcome) Failed() bool {
	return o.Failure != ""
}

// Snapshot is a point-in-time copy of the form consumed by renderers.
type Snapshot struct {
	State      State   `json:"state"`
	Errors     Errors  `json:"errors"`
	Outcome    Outcome `json:"outcome"`
	Enabled    bool    `json:"enabled"`
	Submitting bool    `json:"submitting"`
}

// NewSnapshot builds the snapshot of a pristine form.
func NewSnapshot(fields []string) Snapshot {
	return Snapshot{
		State:  DefaultState(),
		Errors: NewErrors(fields),
	}
}
