// Package surveyjs renders SurveyJS initialisation scripts and standalone
// pages for each supported client platform from embedded pongo2 templates.
package surveyjs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-questions/pkg/render"
	rendertemplate "github.com/goliatone/go-questions/pkg/render/template"
	gotemplate "github.com/goliatone/go-questions/pkg/render/template/gotemplate"
	"github.com/goliatone/go-questions/pkg/resources"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders one platform.
type Renderer struct {
	platform  string
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer for platform applying any provided options.
func New(platform string, options ...Option) (*Renderer, error) {
	if !resources.ValidPlatform(platform) {
		return nil, fmt.Errorf("surveyjs renderer: %w %q", resources.ErrUnknownPlatform, platform)
	}
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := newEngine(cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("surveyjs renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{platform: platform, templates: renderer}, nil
}

// newEngine compiles templates from files. Scripts without a theme fall back
// to the default_theme global.
func newEngine(files fs.FS) (*gotemplate.Engine, error) {
	return gotemplate.New(
		gotemplate.WithFS(files),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithGlobals(map[string]any{
			"default_theme": resources.DefaultTheme,
		}),
	)
}

func (r *Renderer) Platform() string {
	return r.platform
}

// RenderScript renders the script that builds the survey model, loads data
// and mounts the survey into the element with data.HTMLID.
func (r *Renderer) RenderScript(ctx context.Context, data render.ScriptData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.templates == nil {
		return "", fmt.Errorf("surveyjs renderer: template renderer is nil")
	}
	values := data.Data
	if values == nil {
		values = map[string]any{}
	}
	survey := strings.TrimSpace(data.JSON)
	if survey == "" {
		survey = "{}"
	}

	result, err := r.templates.RenderTemplate("survey_js."+r.platform, map[string]any{
		"json":    survey,
		"data":    values,
		"html_id": data.HTMLID,
		"action":  data.Action,
		"theme":   data.Theme,
	})
	if err != nil {
		return "", fmt.Errorf("surveyjs renderer: render script: %w", err)
	}
	return result, nil
}

// RenderPage renders a standalone HTML page loading data.JS and data.CSS and
// running data.Script. Markup in the title is stripped.
func (r *Renderer) RenderPage(ctx context.Context, data render.PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.templates == nil {
		return "", fmt.Errorf("surveyjs renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate("survey_html."+r.platform, map[string]any{
		"title":   SanitizeTitle(data.Title),
		"html_id": data.HTMLID,
		"script":  data.Script,
		"js":      stringsOrEmpty(data.JS),
		"css":     stringsOrEmpty(data.CSS),
	})
	if err != nil {
		return "", fmt.Errorf("surveyjs renderer: render page: %w", err)
	}
	return result, nil
}

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// SanitizeTitle strips markup from title and escapes what remains.
func SanitizeTitle(title string) string {
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(titlePolicy.Sanitize(title))
}

func stringsOrEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *render.Registry
	defaultRegistryErr  error
)

// Registry returns a shared registry holding a renderer for every supported
// platform, all backed by one template engine.
func Registry() (*render.Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	return defaultRegistry, defaultRegistryErr
}

// NewRegistry builds a registry with a renderer for every supported platform.
func NewRegistry(options ...Option) (*render.Registry, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateRenderer == nil {
		engine, err := newEngine(cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("surveyjs renderer: configure template renderer: %w", err)
		}
		cfg.templateRenderer = engine
	}

	registry := render.NewRegistry()
	for _, platform := range resources.Platforms() {
		renderer, err := New(platform, WithTemplateRenderer(cfg.templateRenderer))
		if err != nil {
			return nil, err
		}
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
