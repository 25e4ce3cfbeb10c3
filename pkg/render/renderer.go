package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer turns a form model plus the current snapshot into bytes (HTML,
// terminal text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
