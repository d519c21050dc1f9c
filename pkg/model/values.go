package model

import (
	"bytes"
	"reflect"

	"github.com/goccy/go-json"
)

func cloneValue(value any) any {
	switch typed := value.(type) {
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

// sameValue compares attribute values by their JSON form so 5 and 5.0 or an
// empty list and a nil list are the same value.
func sameValue(a, b any) bool {
	if isEmptyCollection(a) && isEmptyCollection(b) {
		return true
	}
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

func isEmptyCollection(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
