package form

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"unicode"

	"github.com/goliatone/go-questions/pkg/validation"
)

// ErrTarget reports an UpdateObject target that cannot receive answers.
var ErrTarget = errors.New("form: target must be a non-nil map[string]any or struct pointer")

// UpdateObject validates values and then copies every indexed answer present
// in values onto target. Struct fields match the `questions` tag, then the
// `json` tag, then the field name ignoring case, then its snake_case form.
// Nothing is written when validation or any conversion fails; validation
// failures are returned as *validation.Error.
func (f *Form) UpdateObject(target any, values map[string]any) error {
	result, err := f.Assemble()
	if err != nil {
		return err
	}
	outcome, err := validation.Validate(result.Index, values, validation.WithLogger(f.logger))
	if err != nil {
		return err
	}
	if err := outcome.Err(); err != nil {
		return err
	}

	names := make([]string, 0, result.Index.Len())
	for _, name := range result.Index.Names() {
		if _, ok := values[name]; ok {
			names = append(names, name)
		}
	}

	if m, ok := target.(map[string]any); ok {
		if m == nil {
			return ErrTarget
		}
		for _, name := range names {
			m[name] = values[name]
		}
		return nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrTarget
	}
	elem := rv.Elem()
	fields := fieldIndex(elem.Type())

	type write struct {
		field reflect.Value
		value reflect.Value
	}
	writes := make([]write, 0, len(names))
	for _, name := range names {
		index, ok := fields.lookup(name)
		if !ok {
			continue
		}
		field := elem.FieldByIndex(index)
		converted, err := convert(values[name], field.Type())
		if err != nil {
			return fmt.Errorf("form: field for %q: %w", name, err)
		}
		writes = append(writes, write{field: field, value: converted})
	}
	for _, w := range writes {
		w.field.Set(w.value)
	}
	f.logger.Debug("form.update.object",
		slog.String("form", f.name),
		slog.Int("fields", len(writes)),
	)
	return nil
}

type fieldSet struct {
	tagged map[string][]int
	json   map[string][]int
	folded map[string][]int
	snake  map[string][]int
}

func fieldIndex(t reflect.Type) fieldSet {
	set := fieldSet{
		tagged: map[string][]int{},
		json:   map[string][]int{},
		folded: map[string][]int{},
		snake:  map[string][]int{},
	}
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		if tag := tagName(field.Tag.Get("questions")); tag != "" {
			if tag != "-" {
				set.tagged[tag] = field.Index
			}
			continue
		}
		if tag := tagName(field.Tag.Get("json")); tag != "" && tag != "-" {
			set.json[tag] = field.Index
		}
		folded := strings.ToLower(field.Name)
		if _, exists := set.folded[folded]; !exists {
			set.folded[folded] = field.Index
		}
		snake := snakeCase(field.Name)
		if _, exists := set.snake[snake]; !exists {
			set.snake[snake] = field.Index
		}
	}
	return set
}

func (s fieldSet) lookup(name string) ([]int, bool) {
	if index, ok := s.tagged[name]; ok {
		return index, true
	}
	if index, ok := s.json[name]; ok {
		return index, true
	}
	if index, ok := s.folded[strings.ToLower(name)]; ok {
		return index, true
	}
	if index, ok := s.snake[name]; ok {
		return index, true
	}
	return nil, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(name)
}

func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// convert adapts a decoded answer to the field type. Numbers convert between
// numeric kinds, lists and objects convert element-wise.
func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch target.Kind() {
	case reflect.Pointer:
		inner, err := convert(value, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isNumber(rv.Kind()) {
			break
		}
		f := rv.Convert(reflect.TypeOf(float64(0))).Float()
		if f != float64(int64(f)) {
			return reflect.Value{}, fmt.Errorf("cannot store %v in %s", value, target)
		}
		out := reflect.New(target).Elem()
		if out.CanInt() {
			if out.OverflowInt(int64(f)) {
				return reflect.Value{}, fmt.Errorf("%v overflows %s", value, target)
			}
			out.SetInt(int64(f))
			return out, nil
		}
		if f < 0 || out.OverflowUint(uint64(f)) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", value, target)
		}
		out.SetUint(uint64(f))
		return out, nil
	case reflect.Float32, reflect.Float64:
		if isNumber(rv.Kind()) {
			return rv.Convert(target), nil
		}
	case reflect.String, reflect.Bool:
		if rv.Kind() == target.Kind() {
			return rv.Convert(target), nil
		}
	case reflect.Slice:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			break
		}
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := convert(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			out.Index(i).Set(item)
		}
		return out, nil
	case reflect.Map:
		if rv.Kind() != reflect.Map || target.Key().Kind() != reflect.String || rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := reflect.MakeMapWithSize(target, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, err := convert(iter.Value().Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", iter.Key().String(), err)
			}
			out.SetMapIndex(iter.Key().Convert(target.Key()), item)
		}
		return out, nil
	case reflect.Interface:
		if rv.Type().Implements(target) {
			return rv, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot store %T in %s", value, target)
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
