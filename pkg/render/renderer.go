package render

import (
	"context"
)

// Renderer produces the SurveyJS bootstrap script and standalone page for one
// client platform.
type Renderer interface {
	Platform() string
	RenderScript(ctx context.Context, data ScriptData) (string, error)
	RenderPage(ctx context.Context, data PageData) (string, error)
}
