package render

import "errors"

// ErrRendererNotFound is returned when no renderer serves a platform.
var ErrRendererNotFound = errors.New("render: renderer not found")
