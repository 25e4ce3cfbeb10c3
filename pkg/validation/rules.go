package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Rule validates a single field value. present is false when the value is
// absent from a generic payload. Check returns the failure message, or an
// empty string when the value passes.
type Rule interface {
	Check(value any, present bool) string
}

// StringRule validates string fields. Checks run in a fixed order: missing,
// allowed values, required, minimum length, maximum length.
type StringRule struct {
	requiredMsg string
	trim        bool
	hasMin      bool
	minLen      int
	minMsg      string
	hasMax      bool
	maxLen      int
	maxMsg      string
	oneOf       []string
	oneOfMsg    string
}

// String starts a string rule; requiredMsg is reported for missing or empty
// values.
func String(requiredMsg string) *StringRule {
	return &StringRule{requiredMsg: requiredMsg}
}

// Trim strips surrounding whitespace before length checks.
func (r *StringRule) Trim() *StringRule {
	r.trim = true
	return r
}

// Min requires at least n characters.
func (r *StringRule) Min(n int, msg string) *StringRule {
	r.hasMin, r.minLen, r.minMsg = true, n, msg
	return r
}

// Max allows at most n characters.
func (r *StringRule) Max(n int, msg string) *StringRule {
	r.hasMax, r.maxLen, r.maxMsg = true, n, msg
	return r
}

// OneOf restricts the value to the provided set.
func (r *StringRule) OneOf(values []string, msg string) *StringRule {
	r.oneOf = append([]string(nil), values...)
	r.oneOfMsg = msg
	return r
}

// Allowed returns the permitted values, nil when unrestricted.
func (r *StringRule) Allowed() []string {
	if len(r.oneOf) == 0 {
		return nil
	}
	return append([]string(nil), r.oneOf...)
}

// Bounds reports the configured length bounds; zero means unset.
func (r *StringRule) Bounds() (minLen, maxLen int) {
	if r.hasMin {
		minLen = r.minLen
	}
	if r.hasMax {
		maxLen = r.maxLen
	}
	return minLen, maxLen
}

func (r *StringRule) Check(value any, present bool) string {
	if !present || value == nil {
		return r.requiredMsg
	}
	str := coerceString(value)
	if r.trim {
		str = strings.TrimSpace(str)
	}
	if len(r.oneOf) > 0 && !slices.Contains(r.oneOf, str) {
		return r.oneOfMsg
	}
	if str == "" {
		return r.requiredMsg
	}
	length := utf8.RuneCountInString(str)
	if r.hasMin && length < r.minLen {
		return r.minMsg
	}
	if r.hasMax && length > r.maxLen {
		return r.maxMsg
	}
	return ""
}

// BoolRule validates boolean fields.
type BoolRule struct {
	requiredMsg string
	hasWant     bool
	want        bool
	wantMsg     string
}

// Bool starts a boolean rule; requiredMsg is reported for missing values.
func Bool(requiredMsg string) *BoolRule {
	return &BoolRule{requiredMsg: requiredMsg}
}

// Equals requires the value to be want.
func (r *BoolRule) Equals(want bool, msg string) *BoolRule {
	r.hasWant, r.want, r.wantMsg = true, want, msg
	return r
}

func (r *BoolRule) Check(value any, present bool) string {
	if !present || value == nil {
		return r.requiredMsg
	}
	b, ok := coerceBool(value)
	if !ok {
		return r.wantMsg
	}
	if r.hasWant && b != r.want {
		return r.wantMsg
	}
	return ""
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
