package template

import (
	"io"
)

// TemplateRenderer executes named or inline templates. When writers are
// supplied the output is also copied to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
