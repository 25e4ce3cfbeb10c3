// Package regform wires the registration form to its default HTTP client
// and renderers. The pkg/ packages remain usable on their own.
package regform

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-regform/pkg/client"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// State aliases form.State, the submitted payload.
type State = form.State

// Outcome aliases form.Outcome.
type Outcome = form.Outcome

// Settings configure NewForm. Zero values fall back to client defaults.
type Settings struct {
	Endpoint string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewForm returns a registration form submitting over HTTP.
func NewForm(settings Settings) *form.Form {
	var clientOpts []client.Option
	if settings.Endpoint != "" {
		clientOpts = append(clientOpts, client.WithEndpoint(settings.Endpoint))
	}
	if settings.Timeout > 0 {
		clientOpts = append(clientOpts, client.WithTimeout(settings.Timeout))
	}
	var formOpts []form.Option
	if settings.Logger != nil {
		clientOpts = append(clientOpts, client.WithLogger(settings.Logger))
		formOpts = append(formOpts, form.WithLogger(settings.Logger))
	}
	return form.New(client.New(clientOpts...), formOpts...)
}

// Model returns the registration form model.
func Model() model.FormModel {
	return model.Registration()
}

// Contract loads the embedded OpenAPI contract of the registration endpoint.
func Contract(ctx context.Context) (*openapi.Contract, error) {
	return openapi.LoadRegistration(ctx)
}

// RenderHTML renders the current state of f with the vanilla renderer.
func RenderHTML(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if options.Snapshot == nil {
		snapshot := f.Snapshot()
		options.Snapshot = &snapshot
	}
	return renderer.Render(ctx, Model(), options)
}
