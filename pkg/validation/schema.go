package validation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// Fixed messages reported by the registration schema.
const (
	MsgUsernameRequired    = "username is required"
	MsgUsernameMin         = "username must be at least 3 characters"
	MsgUsernameMax         = "username cannot exceed 20 characters"
	MsgFavLanguageRequired = "favLanguage is required"
	MsgFavLanguageOptions  = "favLanguage must be either javascript or rust"
	MsgFavFoodRequired     = "favFood is required"
	MsgFavFoodOptions      = "favFood must be either broccoli, spaghetti or pizza"
	MsgAgreementRequired   = "agreement is required"
	MsgAgreementOptions    = "agreement must be accepted"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20
)

var (
	// Languages lists the accepted favLanguage values.
	Languages = []string{"javascript", "rust"}
	// Foods lists the accepted favFood values.
	Foods = []string{"pizza", "spaghetti", "broccoli"}
)

// ErrUnknownField is returned when a field is not part of the schema.
var ErrUnknownField = errors.New("validation: unknown field")

// Schema is an ordered set of per-field rules.
type Schema struct {
	order []string
	rules map[string]Rule
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{rules: make(map[string]Rule)}
}

// Field registers rule for name. Registering the same name twice replaces the
// rule but keeps the original position.
func (s *Schema) Field(name string, rule Rule) *Schema {
	if _, exists := s.rules[name]; !exists {
		s.order = append(s.order, name)
	}
	s.rules[name] = rule
	return s
}

// Registration returns the fixed schema for the registration form.
func Registration() *Schema {
	return NewSchema().
		Field(model.FieldUsername, String(MsgUsernameRequired).
			Trim().
			Min(UsernameMinLength, MsgUsernameMin).
			Max(UsernameMaxLength, MsgUsernameMax)).
		Field(model.FieldFavLanguage, String(MsgFavLanguageRequired).
			OneOf(Languages, MsgFavLanguageOptions)).
		Field(model.FieldFavFood, String(MsgFavFoodRequired).
			OneOf(Foods, MsgFavFoodOptions)).
		Field(model.FieldAgreement, Bool(MsgAgreementRequired).
			Equals(true, MsgAgreementOptions))
}

// Fields lists the field names in registration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.order...)
}

// Rule returns the rule registered for name.
func (s *Schema) Rule(name string) (Rule, bool) {
	rule, ok := s.rules[name]
	return rule, ok
}

// Has reports whether name is part of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.rules[name]
	return ok
}

// ValidateField checks a single present value and returns its failure
// message, empty when valid.
func (s *Schema) ValidateField(name string, value any) (string, error) {
	rule, ok := s.rules[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return rule.Check(value, true), nil
}

// Validate checks every schema field against values. Absent keys fail with
// the field's required message; keys outside the schema are ignored.
func (s *Schema) Validate(values map[string]any) Errors {
	errs := NewErrors()
	for _, name := range s.order {
		value, present := values[name]
		msg := s.rules[name].Check(value, present)
		errs.Check(msg == "", name, msg)
	}
	return errs
}

// Valid reports whether values satisfy every rule.
func (s *Schema) Valid(values map[string]any) bool {
	for _, name := range s.order {
		value, present := values[name]
		if s.rules[name].Check(value, present) != "" {
			return false
		}
	}
	return true
}
