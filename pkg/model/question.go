package model

import (
	"sort"

	"github.com/goliatone/go-questions/pkg/widgets"
)

// Question is a single form field. Common attributes the engine reads are
// typed fields; every other declared or passthrough attribute lives in Params
// keyed by its snake_case name.
type Question struct {
	Kind       Kind
	Name       string
	Title      string
	Required   bool
	Validators []Validator
	ExtraJS    []string
	ExtraCSS   []string
	Params     map[string]any
}

// QuestionOption configures a question during construction.
type QuestionOption func(*questionBuilder)

type questionBuilder struct {
	question  *Question
	widgets   *widgets.Registry
	assetsSet bool
}

// WithName sets an explicit name. Without one the member slot name is used.
func WithName(name string) QuestionOption {
	return func(b *questionBuilder) { b.question.Name = name }
}

// WithTitle sets the visible question title.
func WithTitle(title string) QuestionOption {
	return func(b *questionBuilder) { b.question.Title = title }
}

// Required marks the question as requiring an answer.
func Required() QuestionOption {
	return func(b *questionBuilder) { b.question.Required = true }
}

// WithValidators appends validators in declaration order.
func WithValidators(validators ...Validator) QuestionOption {
	return func(b *questionBuilder) {
		b.question.Validators = append(b.question.Validators, validators...)
	}
}

// WithParam sets an attribute by its snake_case name. Unknown names are kept
// as passthrough attributes.
func WithParam(name string, value any) QuestionOption {
	return func(b *questionBuilder) { b.question.setParam(name, value) }
}

// WithParams sets several attributes at once.
func WithParams(params map[string]any) QuestionOption {
	return func(b *questionBuilder) {
		for name, value := range params {
			b.question.setParam(name, value)
		}
	}
}

func WithDescription(description string) QuestionOption {
	return WithParam("description", description)
}

func WithDefault(value any) QuestionOption {
	return WithParam("default_value", value)
}

func WithVisibleIf(expression string) QuestionOption {
	return WithParam("visible_if", expression)
}

func WithEnableIf(expression string) QuestionOption {
	return WithParam("enable_if", expression)
}

func WithRequiredIf(expression string) QuestionOption {
	return WithParam("required_if", expression)
}

// WithChoices sets the choices of choice based kinds.
func WithChoices(choices ...any) QuestionOption {
	return WithParam("choices", append([]any(nil), choices...))
}

// WithExtraJS replaces the widget scripts of the question.
func WithExtraJS(urls ...string) QuestionOption {
	return func(b *questionBuilder) {
		b.question.ExtraJS = append([]string(nil), urls...)
		b.assetsSet = true
	}
}

// WithExtraCSS replaces the widget stylesheets of the question.
func WithExtraCSS(urls ...string) QuestionOption {
	return func(b *questionBuilder) {
		b.question.ExtraCSS = append([]string(nil), urls...)
		b.assetsSet = true
	}
}

// WithWidgets resolves default widget assets from reg instead of the shared
// registry.
func WithWidgets(reg *widgets.Registry) QuestionOption {
	return func(b *questionBuilder) { b.widgets = reg }
}

// NewQuestion builds a question of the given kind. Widget assets default from
// the widget registry using the render_as hint first, then the kind. Unknown
// kinds panic: kinds come from this package's constants.
func NewQuestion(kind Kind, opts ...QuestionOption) *Question {
	MustSpec(kind)
	if kind.IsContainer() {
		panic("model: containers are declared through Definition.AddPanel")
	}
	b := &questionBuilder{question: &Question{Kind: kind}}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if !b.assetsSet {
		reg := b.widgets
		if reg == nil {
			reg = widgets.Default()
		}
		assets := reg.AssetsFor(string(kind), b.question.RenderAs())
		b.question.ExtraJS, b.question.ExtraCSS = assets.JS, assets.CSS
	}
	return b.question
}

// Spec returns the declared attribute set of the question's kind.
func (q *Question) Spec() (KindSpec, bool) {
	return Spec(q.Kind)
}

// Param returns the effective value of an attribute: explicit params first,
// then the declared default.
func (q *Question) Param(name string) (any, bool) {
	if q == nil {
		return nil, false
	}
	if value, ok := q.Params[name]; ok {
		return value, true
	}
	spec, ok := Spec(q.Kind)
	if !ok {
		return nil, false
	}
	return spec.Default(name)
}

// RenderAs returns the widget render hint, if any.
func (q *Question) RenderAs() string {
	value, _ := q.Params["render_as"].(string)
	return value
}

// Clone returns a deep copy of q.
func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	out := *q
	out.Validators = append([]Validator(nil), q.Validators...)
	out.ExtraJS = append([]string(nil), q.ExtraJS...)
	out.ExtraCSS = append([]string(nil), q.ExtraCSS...)
	if q.Params != nil {
		out.Params = make(map[string]any, len(q.Params))
		for key, value := range q.Params {
			out.Params[key] = cloneValue(value)
		}
	}
	return &out
}

// Attributes returns the effective attributes of q: the declared set in
// declaration order followed by passthrough params in key order.
func (q *Question) Attributes() []Attribute {
	spec := MustSpec(q.Kind)
	fixed := map[string]any{
		"kind":       string(q.Kind),
		"name":       q.Name,
		"required":   q.Required,
		"validators": q.Validators,
	}
	if q.Title != "" {
		fixed["title"] = q.Title
	}
	return Attributes(spec, fixed, q.Params)
}

func (q *Question) setParam(name string, value any) {
	switch name {
	case "kind":
		return
	case "name":
		if s, ok := value.(string); ok {
			q.Name = s
			return
		}
	case "title":
		if s, ok := value.(string); ok {
			q.Title = s
			return
		}
	case "required":
		if b, ok := value.(bool); ok {
			q.Required = b
			return
		}
	case "validators":
		if list, ok := value.([]Validator); ok {
			q.Validators = append([]Validator(nil), list...)
			return
		}
	}
	if q.Params == nil {
		q.Params = make(map[string]any)
	}
	q.Params[name] = value
}

// Attribute is one resolved attribute value.
type Attribute struct {
	Name      string
	Value     any
	Default   bool
	Container bool
}

// Attributes resolves the attributes of spec. Values in fixed win over params,
// params win over declared defaults. Container slots come back as markers
// without values. Params outside the declared set follow in key order.
func Attributes(spec KindSpec, fixed, params map[string]any) []Attribute {
	out := make([]Attribute, 0, len(spec.Attrs)+len(params))
	for _, attr := range spec.Attrs {
		if attr.Container {
			out = append(out, Attribute{Name: attr.Name, Container: true})
			continue
		}
		if value, ok := fixed[attr.Name]; ok {
			out = append(out, Attribute{Name: attr.Name, Value: value, Default: sameValue(value, attr.Default)})
			continue
		}
		if value, ok := params[attr.Name]; ok {
			out = append(out, Attribute{Name: attr.Name, Value: value, Default: sameValue(value, attr.Default)})
			continue
		}
		out = append(out, Attribute{Name: attr.Name, Value: cloneValue(attr.Default), Default: true})
	}

	extras := make([]string, 0, len(params))
	for name := range params {
		if spec.Declares(name) {
			continue
		}
		if _, ok := fixed[name]; ok {
			continue
		}
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		out = append(out, Attribute{Name: name, Value: params[name]})
	}
	return out
}
