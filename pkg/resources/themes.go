package resources

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the manifest asset key holding a theme stylesheet.
const StylesheetAsset = "surveyjs.stylesheet"

// ThemeToken is the manifest token holding the SurveyJS theme name applied by
// the client scripts.
const ThemeToken = "surveyjs.theme"

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "defaultV2"

var builtinThemes = []string{
	"default", "defaultV2", "bootstrap", "orange", "darkblue", "darkrose",
	"stone", "winter", "winterstone", "modern",
}

// Catalog resolves theme stylesheets from go-theme manifests. An optional
// selector takes precedence over the built-in manifests.
type Catalog struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	selector  theme.ThemeSelector
	variant   string
}

// CatalogOption configures a catalog.
type CatalogOption func(*Catalog)

// WithThemeSelector resolves themes through selector first, using variant
// when the caller does not ask for one.
func WithThemeSelector(selector theme.ThemeSelector, variant string) CatalogOption {
	return func(c *Catalog) {
		c.selector = selector
		c.variant = variant
	}
}

// WithManifest registers or replaces a theme manifest.
func WithManifest(manifest *theme.Manifest) CatalogOption {
	return func(c *Catalog) {
		if manifest != nil && manifest.Name != "" {
			c.manifests[manifest.Name] = manifest
		}
	}
}

// NewCatalog returns a catalog holding the built-in SurveyJS themes.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{manifests: make(map[string]*theme.Manifest, len(builtinThemes))}
	for _, name := range builtinThemes {
		c.manifests[name] = builtinManifest(name)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the shared catalog of built-in themes.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func builtinManifest(name string) *theme.Manifest {
	stylesheet := "survey-core/survey.min.css"
	switch name {
	case "bootstrap":
		stylesheet = BootstrapURL
	case "modern":
		stylesheet = "survey-core/modern.min.css"
	}
	return &theme.Manifest{
		Name:    name,
		Version: Version,
		Tokens: map[string]string{
			ThemeToken: name,
		},
		Assets: theme.Assets{
			Files: map[string]string{
				StylesheetAsset: stylesheet,
			},
		},
	}
}

// Themes lists the known theme names in lexical order.
func (c *Catalog) Themes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifest returns the manifest registered for name.
func (c *Catalog) Manifest(name string) (*theme.Manifest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	manifest, ok := c.manifests[name]
	return manifest, ok
}

// Provider exposes the catalog manifests as a go-theme registry.
func (c *Catalog) Provider() (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	for _, name := range c.Themes() {
		manifest, _ := c.Manifest(name)
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("resources: register theme %q: %w", name, err)
		}
	}
	return registry, nil
}

// ThemeCSS returns the stylesheets for the named theme resolved against base.
// Unknown themes share the standard SurveyJS stylesheet.
func (c *Catalog) ThemeCSS(name, base string) []string {
	manifest, variant := c.resolve(name)
	stylesheet := assetPath(manifest, variant, StylesheetAsset)
	if stylesheet == "" {
		stylesheet = "survey-core/survey.min.css"
	}
	return []string{resolveURL(stylesheet, base)}
}

// ThemeName returns the client side theme name for name, honouring a manifest
// token override.
func (c *Catalog) ThemeName(name string) string {
	manifest, variant := c.resolve(name)
	if manifest == nil {
		return name
	}
	if variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			if token := strings.TrimSpace(v.Tokens[ThemeToken]); token != "" {
				return token
			}
		}
	}
	if token := strings.TrimSpace(manifest.Tokens[ThemeToken]); token != "" {
		return token
	}
	return name
}

func (c *Catalog) resolve(name string) (*theme.Manifest, string) {
	c.mu.RLock()
	selector, variant := c.selector, c.variant
	manifest := c.manifests[name]
	c.mu.RUnlock()

	if selector != nil {
		if selection, err := selector.Select(name, variant); err == nil && selection != nil && selection.Manifest != nil {
			return selection.Manifest, selection.Variant
		}
	}
	return manifest, ""
}

func assetPath(manifest *theme.Manifest, variant, key string) string {
	if manifest == nil {
		return ""
	}
	prefix := manifest.Assets.Prefix
	file := manifest.Assets.Files[key]
	if variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			if override := v.Assets.Files[key]; override != "" {
				file = override
				if v.Assets.Prefix != "" {
					prefix = v.Assets.Prefix
				}
			}
		}
	}
	if file == "" {
		return ""
	}
	if isAbsolute(file) || prefix == "" {
		return file
	}
	if isAbsolute(prefix) {
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return path.Join(prefix, file)
}

func resolveURL(asset, base string) string {
	if isAbsolute(asset) {
		return Rewrite(asset, base)
	}
	return Base(base) + "/" + strings.TrimLeft(asset, "/")
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//")
}
