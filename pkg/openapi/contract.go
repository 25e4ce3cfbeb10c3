package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Contract is a resolved operation plus its JSON request schema.
type Contract struct {
	spec      *openapi3.T
	path      string
	method    string
	operation *openapi3.Operation
	request   *openapi3.Schema
}

// NewContract locates operationID inside spec.
func NewContract(spec *openapi3.T, operationID string) (*Contract, error) {
	if spec == nil || spec.Paths == nil {
		return nil, errors.New("openapi: spec is nil")
	}

	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			request, err := requestSchema(op.RequestBody)
			if err != nil {
				return nil, fmt.Errorf("openapi: operation %s: %w", operationID, err)
			}
			return &Contract{
				spec:      spec,
				path:      path,
				method:    strings.ToUpper(method),
				operation: op,
				request:   request,
			}, nil
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) (*openapi3.Schema, error) {
	if body == nil || body.Value == nil {
		return nil, errors.New("request body is missing")
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("application/json request schema is missing")
	}
	return media.Schema.Value, nil
}

// Spec returns the parsed document.
func (c *Contract) Spec() *openapi3.T {
	return c.spec
}

// OperationID returns the resolved operation id.
func (c *Contract) OperationID() string {
	return c.operation.OperationID
}

// Path returns the operation path, for example /registration.
func (c *Contract) Path() string {
	return c.path
}

// Method returns the upper-case HTTP method.
func (c *Contract) Method() string {
	return c.method
}

// Endpoint joins the first server URL with the operation path.
func (c *Contract) Endpoint() string {
	base := ""
	if len(c.spec.Servers) > 0 && c.spec.Servers[0] != nil {
		base = strings.TrimRight(c.spec.Servers[0].URL, "/")
	}
	return base + c.path
}

// RequestSchema returns the request body schema.
func (c *Contract) RequestSchema() *openapi3.Schema {
	return c.request
}

// Issue is a single payload violation.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidatePayload checks payload against the request schema and reports
// every violation, ordered by field name. Length bounds apply to the trimmed
// value, matching the form's own rules.
func (c *Contract) ValidatePayload(payload map[string]any) []Issue {
	err := c.request.VisitJSON(c.trimBounded(payload), openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	issues := collectIssues(err, nil)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})
	return issues
}

// trimBounded returns a copy of payload with surrounding spaces removed from
// string properties that carry minLength or maxLength.
func (c *Contract) trimBounded(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
		text, ok := value.(string)
		if !ok {
			continue
		}
		prop := c.request.Properties[key]
		if prop == nil || prop.Value == nil {
			continue
		}
		if prop.Value.MinLength > 0 || prop.Value.MaxLength != nil {
			out[key] = strings.TrimSpace(text)
		}
	}
	return out
}

func collectIssues(err error, out []Issue) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			out = collectIssues(inner, out)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := ""
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = pointer[0]
		}
		return append(out, Issue{Field: field, Message: strings.TrimSpace(schemaErr.Reason)})
	}
	return append(out, Issue{Message: strings.TrimSpace(err.Error())})
}
