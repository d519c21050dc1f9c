package wire

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questions/internal/naming"
	"github.com/goliatone/go-questions/pkg/model"
)

// ErrUnknownValidator reports a validator type the model does not define.
var ErrUnknownValidator = errors.New("wire: unrecognized validator type")

// ErrMalformed reports input that is not a SurveyJS object.
var ErrMalformed = errors.New("wire: malformed survey")

var containerKeys = []string{"questions", "elements", "templateElements"}

// Unmarshal rebuilds a form definition named name from SurveyJS JSON. Pages
// become page wrappers, except the default page whose questions are added at
// the top level. Element types without a model counterpart are skipped.
func Unmarshal(data []byte, name string) (*model.Definition, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromMap(doc, name)
}

// UnmarshalYAML is Unmarshal for YAML documents using the same key names.
func UnmarshalYAML(data []byte, name string) (*model.Definition, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromMap(doc, name)
}

// FromMap rebuilds a definition from a decoded wire object.
func FromMap(doc map[string]any, name string) (*model.Definition, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	def := model.NewDefinition(name)
	d := &decoder{}

	for _, key := range sortedKeys(doc) {
		value := doc[key]
		switch {
		case key == "pages":
			pages, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: pages must be a list", ErrMalformed)
			}
			for _, raw := range pages {
				page, ok := raw.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%w: page must be an object", ErrMalformed)
				}
				if err := d.page(def, page); err != nil {
					return nil, err
				}
			}
		case isContainerKey(key):
			if err := d.elements(def, value); err != nil {
				return nil, err
			}
		default:
			model.WithFormParam(naming.InternalName(key), value)(def)
		}
	}
	return def, nil
}

type decoder struct {
	anonymous int
}

func (d *decoder) page(parent *model.Definition, page map[string]any) error {
	name := containerName(page, "Page")
	if name == model.DefaultPageName {
		return d.children(parent, page)
	}
	inner := model.NewDefinition(name)
	if err := d.children(inner, page); err != nil {
		return err
	}
	parent.AddPage(name, inner, model.WrapperParams(params(page)))
	return nil
}

func (d *decoder) panel(parent *model.Definition, panel map[string]any, dynamic bool) error {
	name := containerName(panel, "Panel")
	inner := model.NewDefinition(name)
	if err := d.children(inner, panel); err != nil {
		return err
	}
	if dynamic {
		parent.AddDynamicPanel(name, inner, model.WrapperParams(params(panel)))
		return nil
	}
	parent.AddPanel(name, inner, model.WrapperParams(params(panel)))
	return nil
}

func (d *decoder) children(def *model.Definition, container map[string]any) error {
	for _, key := range containerKeys {
		if value, ok := container[key]; ok {
			if err := d.elements(def, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) elements(def *model.Definition, value any) error {
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: elements must be a list", ErrMalformed)
	}
	for _, raw := range list {
		element, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: element must be an object", ErrMalformed)
		}
		kind, _ := element["type"].(string)
		switch {
		case kind == string(model.KindPanel):
			if err := d.panel(def, element, false); err != nil {
				return err
			}
		case kind == string(model.KindPanelDynamic):
			if err := d.panel(def, element, true); err != nil {
				return err
			}
		case model.IsQuestionKind(model.Kind(kind)):
			if err := d.question(def, model.Kind(kind), element); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) question(def *model.Definition, kind model.Kind, element map[string]any) error {
	attrs := params(element)
	if raw, ok := element["validators"]; ok {
		list, err := decodeValidators(raw)
		if err != nil {
			return fmt.Errorf("question %v: %w", element["name"], err)
		}
		attrs["validators"] = list
	}
	name, _ := element["name"].(string)
	if name == "" {
		d.anonymous++
		name = fmt.Sprintf("question%d", d.anonymous)
	}
	attrs["name"] = name
	def.Add(name, model.NewQuestion(kind, model.WithParams(attrs)))
	return nil
}

// params converts wire keys to internal names, leaving out the element type,
// its name and nested containers.
func params(element map[string]any) map[string]any {
	out := make(map[string]any, len(element))
	for key, value := range element {
		if key == "type" || key == "name" || key == "validators" || isContainerKey(key) {
			continue
		}
		out[naming.InternalName(key)] = value
	}
	return out
}

func decodeValidators(raw any) ([]model.Validator, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: validators must be a list", ErrMalformed)
	}
	out := make([]model.Validator, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: validator must be an object", ErrMalformed)
		}
		kind, _ := obj["type"].(string)
		message, _ := obj["message"].(string)
		switch model.ValidatorKind(kind) {
		case model.ValidatorText:
			allow := true
			if v, ok := obj["allowDigits"].(bool); ok {
				allow = v
			}
			out = append(out, model.TextValidator{
				Message:        message,
				MinLength:      int(number(obj, "minLength")),
				MaxLength:      int(number(obj, "maxLength")),
				DisallowDigits: !allow,
			})
		case model.ValidatorNumeric:
			out = append(out, model.NumericValidator{
				Message:  message,
				MinValue: number(obj, "minValue", "min"),
				MaxValue: number(obj, "maxValue", "max"),
			})
		case model.ValidatorEmail:
			out = append(out, model.EmailValidator{Message: message})
		case model.ValidatorRegex:
			regex, _ := obj["regex"].(string)
			out = append(out, model.RegexValidator{Message: message, Regex: regex})
		case model.ValidatorExpression:
			expression, _ := obj["expression"].(string)
			out = append(out, model.ExpressionValidator{Message: message, Expression: expression})
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownValidator, kind)
		}
	}
	return out, nil
}

func number(obj map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

// containerName is the explicit name, else the title with its first letter
// upper-cased, else fallback.
func containerName(container map[string]any, fallback string) string {
	if name, ok := container["name"].(string); ok && name != "" {
		return name
	}
	if title, ok := container["title"].(string); ok && title != "" {
		return upperFirst(title)
	}
	return fallback
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isContainerKey(key string) bool {
	for _, candidate := range containerKeys {
		if key == candidate {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
