package model

// FieldType is the value kind stored for a field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
)

// Control identifies the form control used to edit a field. Values follow the
// HTML input types so renderers can emit them verbatim.
type Control string

const (
	ControlText     Control = "text"
	ControlRadio    Control = "radio"
	ControlSelect   Control = "select"
	ControlCheckbox Control = "checkbox"
)

// Option is a selectable choice for radio and select controls. An option with
// an empty Value acts as a placeholder.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field models an individual control inside the form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Control     Control           `json:"control"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Choices returns the option values, skipping placeholders.
func (f Field) Choices() []string {
	out := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		if opt.Value == "" {
			continue
		}
		out = append(out, opt.Value)
	}
	return out
}

// OptionLabel resolves the label for value, falling back to the value itself.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value && opt.Label != "" {
			return opt.Label
		}
	}
	return value
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in display order.
func (m FormModel) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, field := range m.Fields {
		names[i] = field.Name
	}
	return names
}
