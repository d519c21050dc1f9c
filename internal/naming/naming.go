// Package naming converts attribute names between the internal snake_case form
// and the camelCase names used by the SurveyJS wire format.
package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var renames = map[string]string{
	"kind":              "type",
	"required":          "isRequired",
	"max_value":         "max",
	"min_value":         "min",
	"all_rows_required": "isAllRowRequired",
	"expression_format": "format",
}

var inverse = func() map[string]string {
	out := make(map[string]string, len(renames))
	for internal, wire := range renames {
		out[wire] = internal
	}
	return out
}()

var (
	firstCapPattern = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapPattern   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// WireName returns the wire name for an internal attribute name. Renamed
// attributes use the fixed table; the rest become camelCase with the first
// word kept as is and every later word capitalised.
func WireName(name string) string {
	if wire, ok := renames[name]; ok {
		return wire
	}
	words := strings.Split(name, "_")
	if len(words) == 1 {
		return name
	}
	caser := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(words[0])
	for _, word := range words[1:] {
		b.WriteString(caser.String(word))
	}
	return b.String()
}

// InternalName reverses WireName: the inverse rename table first, then a
// camelCase to snake_case split.
func InternalName(wire string) string {
	if name, ok := inverse[wire]; ok {
		return name
	}
	out := firstCapPattern.ReplaceAllString(wire, "${1}_${2}")
	out = allCapPattern.ReplaceAllString(out, "${1}_${2}")
	return strings.ToLower(out)
}
