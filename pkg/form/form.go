// Package form binds a definition to its hosting options: platform, theme,
// resource location and submission target. Every schema or asset query
// assembles the definition again, so a Form reflects the definition as it is
// at call time and can be shared between goroutines.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-questions/pkg/assembler"
	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/render"
	"github.com/goliatone/go-questions/pkg/renderers/surveyjs"
	"github.com/goliatone/go-questions/pkg/resources"
	"github.com/goliatone/go-questions/pkg/validation"
	"github.com/goliatone/go-questions/pkg/wire"
)

const (
	DefaultHTMLID   = "questions_form"
	DefaultTheme    = "defaultV2"
	DefaultPlatform = "jquery"
)

// ErrNilDefinition is returned when New receives no definition.
var ErrNilDefinition = errors.New("form: definition is required")

// Option customises a Form.
type Option func(*Form)

// WithName overrides the form name, which defaults to the definition name.
func WithName(name string) Option {
	return func(f *Form) {
		if name != "" {
			f.name = name
		}
	}
}

// WithAction sets the URL answers are posted to on completion. Empty keeps
// the answers on the page.
func WithAction(action string) Option {
	return func(f *Form) {
		f.action = action
	}
}

// WithHTMLID sets the id of the element the survey mounts into.
func WithHTMLID(id string) Option {
	return func(f *Form) {
		if id != "" {
			f.htmlID = id
		}
	}
}

// WithTheme selects the base theme.
func WithTheme(theme string) Option {
	return func(f *Form) {
		if theme != "" {
			f.theme = theme
		}
	}
}

// WithPlatform selects the client platform.
func WithPlatform(platform string) Option {
	return func(f *Form) {
		if platform != "" {
			f.platform = platform
		}
	}
}

// WithResourceURL points every resource at a self hosted base URL.
func WithResourceURL(base string) Option {
	return func(f *Form) {
		f.resourceURL = resources.Base(base)
	}
}

// WithParam sets a survey level attribute, overriding the definition.
func WithParam(name string, value any) Option {
	return func(f *Form) {
		if f.params == nil {
			f.params = make(map[string]any)
		}
		f.params[name] = value
	}
}

// WithParams sets several survey level attributes.
func WithParams(params map[string]any) Option {
	return func(f *Form) {
		for name, value := range params {
			WithParam(name, value)(f)
		}
	}
}

// WithLogger sets the logger passed to assembly and validation.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRegistry injects the renderer registry used by RenderJS and RenderHTML.
func WithRegistry(registry *render.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithCatalog injects the theme catalog.
func WithCatalog(catalog *resources.Catalog) Option {
	return func(f *Form) {
		if catalog != nil {
			f.catalog = catalog
		}
	}
}

// Form is a definition ready to be served.
type Form struct {
	def         *model.Definition
	name        string
	action      string
	htmlID      string
	theme       string
	platform    string
	resourceURL string
	params      map[string]any
	logger      *slog.Logger
	registry    *render.Registry
	catalog     *resources.Catalog
}

// New binds def to the given options. Unknown platforms are rejected.
func New(def *model.Definition, options ...Option) (*Form, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}
	f := &Form{
		def:         def,
		name:        def.Name,
		htmlID:      DefaultHTMLID,
		theme:       DefaultTheme,
		platform:    DefaultPlatform,
		resourceURL: resources.CDN,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		catalog:     resources.DefaultCatalog(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if !resources.ValidPlatform(f.platform) {
		return nil, fmt.Errorf("form: %w %q", resources.ErrUnknownPlatform, f.platform)
	}
	return f, nil
}

func (f *Form) Name() string        { return f.name }
func (f *Form) Action() string      { return f.action }
func (f *Form) HTMLID() string      { return f.htmlID }
func (f *Form) Theme() string       { return f.theme }
func (f *Form) Platform() string    { return f.platform }
func (f *Form) ResourceURL() string { return f.resourceURL }

// Definition returns the bound definition.
func (f *Form) Definition() *model.Definition { return f.def }

// Params returns the effective survey attributes: definition params overlaid
// with the form params.
func (f *Form) Params() map[string]any {
	out := make(map[string]any, len(f.def.Params)+len(f.params))
	for name, value := range f.def.Params {
		out[name] = value
	}
	for name, value := range f.params {
		out[name] = value
	}
	return out
}

// Assemble builds a fresh schema tree, question index and widget asset list.
func (f *Form) Assemble() (*assembler.Result, error) {
	return assembler.Assemble(f.def,
		assembler.WithResourceURL(f.resourceURL),
		assembler.WithRequiredAssets(f.RequiredJS(), f.RequiredCSS()),
		assembler.WithSurveyParams(f.params),
		assembler.WithLogger(f.logger),
	)
}

// ToJSON returns the SurveyJS JSON document.
func (f *Form) ToJSON(opts ...wire.Option) ([]byte, error) {
	result, err := f.Assemble()
	if err != nil {
		return nil, err
	}
	return wire.Marshal(result.Survey, opts...)
}

// RequiredJS lists the scripts the platform needs.
func (f *Form) RequiredJS() []string {
	list, err := resources.PlatformJS(f.platform, f.resourceURL)
	if err != nil {
		return nil
	}
	return list
}

// RequiredCSS lists the theme stylesheets.
func (f *Form) RequiredCSS() []string {
	return f.catalog.ThemeCSS(f.theme, f.resourceURL)
}

// ExtraJS lists the widget scripts the questions need, followed by the
// widgets bootstrap when there is at least one.
func (f *Form) ExtraJS() ([]string, error) {
	result, err := f.Assemble()
	if err != nil {
		return nil, err
	}
	return result.ExtraJS, nil
}

// ExtraCSS lists the widget stylesheets the questions need.
func (f *Form) ExtraCSS() ([]string, error) {
	result, err := f.Assemble()
	if err != nil {
		return nil, err
	}
	return result.ExtraCSS, nil
}

// JS returns RequiredJS followed by ExtraJS.
func (f *Form) JS() ([]string, error) {
	extra, err := f.ExtraJS()
	if err != nil {
		return nil, err
	}
	return append(f.RequiredJS(), extra...), nil
}

// CSS returns RequiredCSS followed by ExtraCSS.
func (f *Form) CSS() ([]string, error) {
	extra, err := f.ExtraCSS()
	if err != nil {
		return nil, err
	}
	return append(f.RequiredCSS(), extra...), nil
}

// RenderJS renders the platform script that initialises the survey with data
// as its initial answers.
func (f *Form) RenderJS(ctx context.Context, data map[string]any) (string, error) {
	result, err := f.Assemble()
	if err != nil {
		return "", err
	}
	return f.renderScript(ctx, result, data)
}

// RenderHTML renders a standalone page hosting the form. An empty title falls
// back to the title param, then the form name.
func (f *Form) RenderHTML(ctx context.Context, title string, data map[string]any) (string, error) {
	if title == "" {
		title = f.defaultTitle()
	}
	result, err := f.Assemble()
	if err != nil {
		return "", err
	}
	script, err := f.renderScript(ctx, result, data)
	if err != nil {
		return "", err
	}
	renderer, err := f.renderer()
	if err != nil {
		return "", err
	}
	html, err := renderer.RenderPage(ctx, render.PageData{
		Title:  title,
		HTMLID: f.htmlID,
		Script: script,
		JS:     append(f.RequiredJS(), result.ExtraJS...),
		CSS:    append(f.RequiredCSS(), result.ExtraCSS...),
	})
	if err != nil {
		return "", fmt.Errorf("form: render page: %w", err)
	}
	f.logger.Debug("form.render.html",
		slog.String("form", f.name),
		slog.String("platform", f.platform),
	)
	return html, nil
}

// Validate checks values against the indexed questions. When setErrors is
// true the issues are also stored in values under validation.DefaultErrorsKey.
func (f *Form) Validate(values map[string]any, setErrors bool) (validation.Result, error) {
	result, err := f.Assemble()
	if err != nil {
		return validation.Result{}, err
	}
	opts := []validation.Option{validation.WithLogger(f.logger)}
	if setErrors {
		opts = append(opts, validation.WithErrorsKey(validation.DefaultErrorsKey))
	}
	return validation.Validate(result.Index, values, opts...)
}

// String summarises the form name and its survey attributes.
func (f *Form) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Form(name=%q", f.name)
	params := f.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		encoded, err := json.Marshal(params[name])
		if err != nil {
			encoded = []byte(fmt.Sprintf("%q", fmt.Sprint(params[name])))
		}
		fmt.Fprintf(&b, ", %s=%s", name, encoded)
	}
	b.WriteString(")")
	return b.String()
}

func (f *Form) renderScript(ctx context.Context, result *assembler.Result, data map[string]any) (string, error) {
	renderer, err := f.renderer()
	if err != nil {
		return "", err
	}
	payload, err := wire.Marshal(result.Survey)
	if err != nil {
		return "", err
	}
	script, err := renderer.RenderScript(ctx, render.ScriptData{
		JSON:   string(payload),
		Data:   data,
		HTMLID: f.htmlID,
		Action: f.action,
		Theme:  f.catalog.ThemeName(f.theme),
	})
	if err != nil {
		return "", fmt.Errorf("form: render script: %w", err)
	}
	return script, nil
}

func (f *Form) renderer() (render.Renderer, error) {
	registry := f.registry
	if registry == nil {
		shared, err := surveyjs.Registry()
		if err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		registry = shared
	}
	renderer, err := registry.Get(f.platform)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	return renderer, nil
}

func (f *Form) defaultTitle() string {
	if title, ok := f.Params()["title"].(string); ok && title != "" {
		return title
	}
	return f.name
}
