// Package wire converts assembled schema trees to and from the SurveyJS JSON
// format. Attribute names are translated between snake_case and the camelCase
// wire names, and only allow-listed attributes are emitted.
package wire

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questions/internal/naming"
	"github.com/goliatone/go-questions/pkg/model"
)

// Object is an ordered wire object.
type Object = orderedmap.OrderedMap[string, any]

// Option configures encoding.
type Option func(*encoder)

// OmitDefaults drops attributes still holding their declared default. The
// element type and name are always written.
func OmitDefaults() Option {
	return func(e *encoder) { e.omitDefaults = true }
}

type encoder struct {
	omitDefaults bool
}

// Document builds the ordered wire object for survey.
func Document(survey *model.Survey, opts ...Option) (*Object, error) {
	if survey == nil {
		return nil, fmt.Errorf("wire: survey is required")
	}
	enc := &encoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(enc)
		}
	}
	return enc.survey(survey)
}

// Marshal encodes survey as compact JSON.
func Marshal(survey *model.Survey, opts ...Option) ([]byte, error) {
	doc, err := Document(survey, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalIndent encodes survey as indented JSON.
func MarshalIndent(survey *model.Survey, prefix, indent string, opts ...Option) ([]byte, error) {
	raw, err := Marshal(survey, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, prefix, indent); err != nil {
		return nil, fmt.Errorf("wire: indent: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes survey as YAML using the wire key names.
func MarshalYAML(survey *model.Survey, opts ...Option) ([]byte, error) {
	doc, err := Document(survey, opts...)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func (e *encoder) survey(survey *model.Survey) (*Object, error) {
	out := orderedmap.New[string, any]()
	for _, attr := range survey.Attributes() {
		if attr.Container {
			pages := make([]any, 0, len(survey.Pages))
			for _, page := range survey.Pages {
				encoded, err := e.page(page)
				if err != nil {
					return nil, err
				}
				pages = append(pages, encoded)
			}
			out.Set(naming.WireName(attr.Name), pages)
			continue
		}
		if err := e.set(out, attr, surveyKeys); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *encoder) page(page *model.Page) (*Object, error) {
	out := orderedmap.New[string, any]()
	for _, attr := range page.Attributes() {
		if attr.Container {
			elements, err := e.elements(page.Elements)
			if err != nil {
				return nil, err
			}
			out.Set(naming.WireName(attr.Name), elements)
			continue
		}
		if err := e.set(out, attr, pageKeys); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *encoder) elements(elements []*model.Element) ([]any, error) {
	out := make([]any, 0, len(elements))
	for _, element := range elements {
		encoded, err := e.element(element)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return out, nil
}

func (e *encoder) element(element *model.Element) (*Object, error) {
	if _, ok := model.Spec(element.Kind); !ok {
		return nil, fmt.Errorf("wire: unrecognized field kind %q", element.Kind)
	}
	out := orderedmap.New[string, any]()
	for _, attr := range element.Attributes() {
		if attr.Container {
			children, err := e.elements(element.Elements)
			if err != nil {
				return nil, err
			}
			out.Set(naming.WireName(attr.Name), children)
			continue
		}
		if err := e.set(out, attr, elementKeys); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *encoder) set(out *Object, attr model.Attribute, allowed map[string]struct{}) error {
	if _, ok := allowed[attr.Name]; !ok {
		return nil
	}
	if e.omitDefaults && attr.Default && attr.Name != "kind" && attr.Name != "name" {
		return nil
	}
	value := attr.Value
	if attr.Name == "validators" {
		list, err := validators(value)
		if err != nil {
			return err
		}
		if e.omitDefaults && len(list) == 0 {
			return nil
		}
		value = list
	}
	out.Set(naming.WireName(attr.Name), value)
	return nil
}

func validators(value any) ([]any, error) {
	switch list := value.(type) {
	case nil:
		return []any{}, nil
	case []model.Validator:
		out := make([]any, 0, len(list))
		for _, v := range list {
			if v == nil {
				return nil, fmt.Errorf("wire: nil validator")
			}
			obj := orderedmap.New[string, any]()
			for _, attr := range model.ValidatorAttributes(v) {
				obj.Set(validatorWireName(attr.Name), attr.Value)
			}
			out = append(out, obj)
		}
		return out, nil
	case []any:
		return list, nil
	}
	return nil, fmt.Errorf("wire: unsupported validators value %T", value)
}

// Validator bounds keep their SurveyJS names instead of the question level
// min/max renames.
func validatorWireName(name string) string {
	switch name {
	case "min_value":
		return "minValue"
	case "max_value":
		return "maxValue"
	}
	return naming.WireName(name)
}
