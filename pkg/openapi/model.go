package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

const (
	extensionNamespace = "x-regform"
	orderExtensionKey  = "x-regform-order"
)

// FormModel derives the form model from the request schema. Field order,
// labels, controls and option labels come from the x-regform extensions.
func (c *Contract) FormModel() (model.FormModel, error) {
	opExt := extensionMap(c.operation.Extensions, extensionNamespace)
	form := model.FormModel{
		OperationID: c.operation.OperationID,
		Endpoint:    c.Endpoint(),
		Method:      c.method,
		Title:       stringValue(opExt, "title"),
		SubmitLabel: stringValue(opExt, "submitLabel"),
	}

	order := fieldOrder(c.request)
	required := make(map[string]bool, len(c.request.Required))
	for _, name := range c.request.Required {
		required[name] = true
	}

	for _, name := range order {
		ref := c.request.Properties[name]
		if ref == nil || ref.Value == nil {
			return model.FormModel{}, fmt.Errorf("openapi: property %q has no schema", name)
		}
		field, err := buildField(name, ref.Value, required[name])
		if err != nil {
			return model.FormModel{}, err
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

func buildField(name string, schema *openapi3.Schema, required bool) (model.Field, error) {
	ext := extensionMap(schema.Extensions, extensionNamespace)
	field := model.Field{
		Name:        name,
		Required:    required,
		Label:       stringValue(ext, "label"),
		Description: schema.Description,
	}

	switch firstSchemaType(schema.Type) {
	case "boolean":
		field.Type = model.FieldTypeBoolean
		field.Default = false
	case "string":
		field.Type = model.FieldTypeString
		field.Default = ""
	default:
		return model.Field{}, fmt.Errorf("openapi: property %q has unsupported type %q", name, firstSchemaType(schema.Type))
	}

	field.Control = model.Control(stringValue(ext, "widget"))
	if field.Control == "" {
		field.Control = defaultControl(field.Type, schema)
	}

	placeholder := stringValue(ext, "placeholder")
	switch field.Control {
	case model.ControlSelect:
		if placeholder != "" {
			field.Options = append(field.Options, model.Option{Label: placeholder, Value: ""})
		}
		field.Options = append(field.Options, enumOptions(schema, ext)...)
	case model.ControlRadio:
		field.Options = enumOptions(schema, ext)
	default:
		field.Placeholder = placeholder
	}
	return field, nil
}

func defaultControl(fieldType model.FieldType, schema *openapi3.Schema) model.Control {
	switch {
	case fieldType == model.FieldTypeBoolean:
		return model.ControlCheckbox
	case len(schema.Enum) > 0:
		return model.ControlSelect
	default:
		return model.ControlText
	}
}

func enumOptions(schema *openapi3.Schema, ext map[string]any) []model.Option {
	labels := extensionMap(ext, "optionLabels")
	options := make([]model.Option, 0, len(schema.Enum))
	for _, raw := range schema.Enum {
		value := fmt.Sprint(raw)
		label := stringValue(labels, value)
		if label == "" {
			label = value
		}
		options = append(options, model.Option{Label: label, Value: value})
	}
	return options
}

func fieldOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string
	if raw, ok := schema.Extensions[orderExtensionKey].([]any); ok {
		for _, item := range raw {
			name, ok := item.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}
	// properties missing from the order extension follow alphabetically
	var rest []string
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func extensionMap(raw map[string]any, key string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	mapped, _ := raw[key].(map[string]any)
	return mapped
}

func stringValue(raw map[string]any, key string) string {
	if len(raw) == 0 {
		return ""
	}
	value, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
