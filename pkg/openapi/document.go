package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed registration.yaml
var registrationDocument []byte

// RegistrationDocument returns the raw embedded contract.
func RegistrationDocument() []byte {
	return append([]byte(nil), registrationDocument...)
}

// Load parses and validates an OpenAPI document.
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// LoadRegistration parses the embedded contract and resolves the
// registration operation.
func LoadRegistration(ctx context.Context) (*Contract, error) {
	spec, err := Load(ctx, registrationDocument)
	if err != nil {
		return nil, err
	}
	return NewContract(spec, "createRegistration")
}
