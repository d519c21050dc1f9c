package validation

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/validation/expr"
)

// check dispatches a validator to its predicate. values is the whole
// submission, used as the namespace of expression validators.
func check(validator model.Validator, value any, values map[string]any) (bool, error) {
	switch v := validator.(type) {
	case model.TextValidator:
		return checkText(v, value), nil
	case model.NumericValidator:
		return checkNumeric(v, value), nil
	case model.EmailValidator:
		return checkEmail(value), nil
	case model.RegexValidator:
		return checkRegex(v, value), nil
	case model.ExpressionValidator:
		return checkExpression(v, values), nil
	}
	return false, fmt.Errorf("%w %T", ErrUnknownValidator, validator)
}

// valueOnly reports validators that only look at the question's own answer.
func valueOnly(validator model.Validator) bool {
	switch validator.(type) {
	case model.TextValidator, model.NumericValidator, model.EmailValidator, model.RegexValidator:
		return true
	}
	return false
}

func checkText(v model.TextValidator, value any) bool {
	text := stringValue(value)
	length := utf8.RuneCountInString(text)
	if length < v.MinLength || v.MaxLength > 0 && length > v.MaxLength {
		return false
	}
	if !v.AllowDigits() && strings.ContainsAny(text, "0123456789") {
		return false
	}
	return true
}

func checkNumeric(v model.NumericValidator, value any) bool {
	n, ok := numericValue(value)
	if !ok {
		return false
	}
	return !(n < v.MinValue || v.MaxValue > 0 && n > v.MaxValue)
}

var lookup = idna.Lookup

func checkEmail(value any) bool {
	text, ok := value.(string)
	if !ok || text == "" {
		return false
	}
	addr, err := mail.ParseAddress(text)
	if err != nil || addr.Address != text || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(text, '@')
	local, domain := text[:at], text[at+1:]
	if local == "" || strings.HasPrefix(domain, "[") {
		return false
	}
	ascii, err := lookup.ToASCII(domain)
	if err != nil {
		return false
	}
	labels := strings.Split(ascii, ".")
	return len(labels) > 1 && labels[len(labels)-1] != ""
}

func checkRegex(v model.RegexValidator, value any) bool {
	re, err := regexp.Compile(v.Regex)
	if err != nil {
		return false
	}
	loc := re.FindStringIndex(stringValue(value))
	return loc != nil && loc[0] == 0
}

var expressionRewriter = strings.NewReplacer("{", "", "}", "")

// RewriteExpression turns a SurveyJS expression into the evaluator dialect:
// variable braces are stripped and the empty, notempty and anyof operators
// become membership tests.
func RewriteExpression(expression string) string {
	out := expressionRewriter.Replace(expression)
	out = strings.ReplaceAll(out, " empty", " in [[], {}]")
	out = strings.ReplaceAll(out, " notempty", " not in [[], {}]")
	return strings.ReplaceAll(out, " anyof ", " in ")
}

func checkExpression(v model.ExpressionValidator, values map[string]any) bool {
	if v.Expression == "" {
		return true
	}
	ok, err := expr.EvalBool(RewriteExpression(v.Expression), values)
	return err == nil && ok
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return n, err == nil
	}
	return 0, false
}
