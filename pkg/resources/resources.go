// Package resources resolves the SurveyJS scripts and stylesheets a host page
// needs: the platform library, suggested platform dependencies and theme CSS.
// URLs point at the public CDN unless a self hosted base URL is configured, in
// which case every known resource collapses to {base}/{filename}.
package resources

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CDN is the default resource location.
	CDN = "https://unpkg.com"
	// Version is the SurveyJS release the templates target.
	Version = "1.8.2"
	// WidgetsScript is the custom widgets bootstrap, relative to the base URL.
	WidgetsScript = "surveyjs-widgets/surveyjs-widgets.min.js"
	// BootstrapURL is the bootstrap stylesheet used by the bootstrap theme.
	BootstrapURL = "https://unpkg.com/bootstrap@3.3.7/dist/css/bootstrap.min.css"
)

// ErrUnknownPlatform reports a platform outside the supported set.
var ErrUnknownPlatform = errors.New("resources: unknown platform")

var platforms = []string{"angular", "jquery", "knockout", "react", "vue"}

var suggestedJS = map[string][]string{
	"angular": {
		"https://npmcdn.com/zone.js",
		"https://npmcdn.com/core-js@2.6.5/client/shim.min.js",
		"https://npmcdn.com/rxjs@5.0.0-beta.6/bundles/Rx.umd.js",
		"https://npmcdn.com/@angular/core@2.0.0-rc.5/bundles/core.umd.js",
		"https://npmcdn.com/@angular/common@2.0.0-rc.5/bundles/common.umd.js",
		"https://npmcdn.com/@angular/compiler@2.0.0-rc.5/bundles/compiler.umd.js",
		"https://npmcdn.com/@angular/platform-browser@2.0.0-rc.5/bundles/platform-browser.umd.js",
		"https://npmcdn.com/@angular/platform-browser-dynamic@2.0.0-rc.5/bundles/platform-browser-dynamic.umd.js",
	},
	"jquery": {
		"https://unpkg.com/jquery@3.5.1/dist/jquery.js",
	},
	"knockout": {
		"https://cdnjs.cloudflare.com/ajax/libs/knockout/3.4.0/knockout-min.js",
	},
	"react": {
		"https://cdnjs.cloudflare.com/ajax/libs/babel-polyfill/7.6.0/polyfill.js",
		"https://unpkg.com/react@15/dist/react.js",
		"https://unpkg.com/react-dom@15/dist/react-dom.js",
		"https://unpkg.com/@babel/standalone@7.2.5/babel.min.js",
	},
	"vue": {
		"https://unpkg.com/vue/dist/vue.js",
	},
}

// Platforms lists the supported platforms.
func Platforms() []string {
	return append([]string(nil), platforms...)
}

// ValidPlatform reports whether platform is supported.
func ValidPlatform(platform string) bool {
	_, ok := suggestedJS[platform]
	return ok
}

// SuggestedJS returns the third party scripts a platform needs.
func SuggestedJS(platform string) ([]string, error) {
	list, ok := suggestedJS[platform]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPlatform, platform)
	}
	return append([]string(nil), list...), nil
}

// PlatformJS returns the suggested scripts followed by the SurveyJS library
// for platform, resolved against base.
func PlatformJS(platform, base string) ([]string, error) {
	suggested, err := SuggestedJS(platform)
	if err != nil {
		return nil, err
	}
	base = Base(base)
	out := make([]string, 0, len(suggested)+1)
	for _, url := range suggested {
		out = append(out, Rewrite(url, base))
	}
	out = append(out, fmt.Sprintf("%s/survey-%s/survey.%s.min.js", base, platform, platform))
	return out, nil
}

// WidgetsBootstrap returns the custom widgets script under base.
func WidgetsBootstrap(base string) string {
	return Base(base) + "/" + WidgetsScript
}

// Base normalises a resource base URL; empty means the CDN.
func Base(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return CDN
	}
	return base
}

// IsCDN reports whether base points at the default CDN.
func IsCDN(base string) bool {
	return Base(base) == CDN
}

// Rewrite maps url onto a self hosted base as {base}/{filename}. URLs are
// returned untouched when base is the CDN.
func Rewrite(url, base string) string {
	if IsCDN(base) {
		return url
	}
	name := url
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		name = url[idx+1:]
	}
	return Base(base) + "/" + name
}
