package form

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// InputTypeCheckbox marks events whose value is carried by Checked.
const InputTypeCheckbox = "checkbox"

// ChangeEvent describes an edit of a single control, mirroring the target of
// an HTML input event.
type ChangeEvent struct {
	Name    string
	Type    string
	Value   string
	Checked bool
}

// Text builds a change event for a text-like control.
func Text(name, value string) ChangeEvent {
	return ChangeEvent{Name: name, Type: string(model.ControlText), Value: value}
}

// Checkbox builds a change event for a checkbox control.
func Checkbox(name string, checked bool) ChangeEvent {
	return ChangeEvent{Name: name, Type: InputTypeCheckbox, Checked: checked}
}

func (e ChangeEvent) isCheckbox() bool {
	return strings.EqualFold(e.Type, InputTypeCheckbox)
}

// value resolves the typed value the event carries for its field.
func (e ChangeEvent) value() any {
	if e.isCheckbox() {
		return e.Checked
	}
	if e.Name == model.FieldAgreement {
		b, err := strconv.ParseBool(strings.TrimSpace(e.Value))
		if err != nil {
			return false
		}
		return b
	}
	return e.Value
}
