package template

import (
	"io"
)

// TemplateRenderer is the seam the platform renderers rely on. Templates are
// addressed by name without extension.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
