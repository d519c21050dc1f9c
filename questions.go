// Package questions is the top-level entry point: declare a definition or
// load a SurveyJS document, bind it to hosting options and serve it.
package questions

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/handler"
	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/renderers/surveyjs"
	"github.com/goliatone/go-questions/pkg/wire"
)

// Form aliases form.Form so callers can stay on the root package.
type Form = form.Form

// Definition aliases model.Definition.
type Definition = model.Definition

// Option aliases form.Option.
type Option = form.Option

// New binds def to the hosting options.
func New(def *model.Definition, options ...form.Option) (*form.Form, error) {
	return form.New(def, options...)
}

// FromJSON rebuilds a form named name from a SurveyJS JSON document.
func FromJSON(data []byte, name string, options ...form.Option) (*form.Form, error) {
	def, err := wire.Unmarshal(data, name)
	if err != nil {
		return nil, err
	}
	return form.New(def, options...)
}

// FromYAML rebuilds a form from the YAML rendition of a SurveyJS document.
func FromYAML(data []byte, name string, options ...form.Option) (*form.Form, error) {
	def, err := wire.UnmarshalYAML(data, name)
	if err != nil {
		return nil, err
	}
	return form.New(def, options...)
}

// Load reads a .json, .yaml or .yml SurveyJS document. The form is named
// after the file.
func Load(path string, options ...form.Option) (*form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("questions: read %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data, name, options...)
	case ".json", "":
		return FromJSON(data, name, options...)
	}
	return nil, fmt.Errorf("questions: unsupported document type %q", ext)
}

// Handler serves f over HTTP. See package handler.
func Handler(f *form.Form, options ...handler.OptionFn) http.Handler {
	return handler.New(f, options...)
}

// EmbeddedTemplates exposes the built-in platform templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return surveyjs.TemplatesFS()
}
