package validation

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questions/pkg/model"
)

func indexOf(questions map[string]*model.Question, order ...string) *model.Index {
	index := model.NewIndex()
	for _, name := range order {
		q := questions[name]
		q.Name = name
		index.Set(name, q)
	}
	return index
}

func TestValidate_NoValidators(t *testing.T) {
	index := indexOf(map[string]*model.Question{"text1": model.Text()}, "text1")
	result, err := Validate(index, map[string]any{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Passed || len(result.Issues) != 0 {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestValidate_Required(t *testing.T) {
	index := indexOf(map[string]*model.Question{"text1": model.Text(model.Required())}, "text1")

	result, err := Validate(index, map[string]any{"text1": "hello"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Passed {
		t.Fatalf("answered required question should pass: %+v", result)
	}

	result, err = Validate(index, map[string]any{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []Issue{{Question: "text1", Message: RequiredMessage}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
}

func TestValidate_ErrorsKey(t *testing.T) {
	index := indexOf(map[string]*model.Question{
		"text1": model.Text(model.WithValidators(model.TextValidator{MinLength: 5})),
	}, "text1")

	values := map[string]any{"text1": "hello is enough"}
	result, err := Validate(index, values)
	if err != nil || !result.Passed {
		t.Fatalf("expected pass, got %+v (%v)", result, err)
	}
	if _, ok := values[DefaultErrorsKey]; ok {
		t.Fatalf("errors key must only be written on request")
	}

	values = map[string]any{"text1": "Bye"}
	result, err = Validate(index, values, WithErrorsKey(DefaultErrorsKey))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Passed {
		t.Fatalf("short answer should fail")
	}
	issues, ok := values[DefaultErrorsKey].([]Issue)
	if !ok || len(issues) != 1 || issues[0].Question != "text1" {
		t.Fatalf("unexpected attached issues: %#v", values[DefaultErrorsKey])
	}
	if issues[0].Message != model.DefaultValidatorMessage {
		t.Fatalf("unexpected message %q", issues[0].Message)
	}
}

func TestValidate_NoShortCircuit(t *testing.T) {
	index := indexOf(map[string]*model.Question{
		"a": model.Text(model.Required(), model.WithValidators(
			model.TextValidator{Message: "too short", MinLength: 3},
			model.RegexValidator{Message: "letters", Regex: `[a-z]+$`},
		)),
		"b": model.Text(model.WithValidators(model.NumericValidator{Message: "range", MinValue: 1, MaxValue: 10})),
	}, "a", "b")

	result, err := Validate(index, map[string]any{"b": 11})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []Issue{
		{Question: "a", Message: RequiredMessage},
		{Question: "a", Message: "too short"},
		{Question: "a", Message: "letters"},
		{Question: "b", Message: "range"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
	var verr *Error
	if err := result.Err(); !errors.As(err, &verr) || !errors.Is(err, ErrFailed) || len(verr.Issues) != 4 {
		t.Fatalf("unexpected error value %v", err)
	}
}

func TestValidate_UnknownValidator(t *testing.T) {
	q := model.Text(model.WithValidators(nil))
	index := indexOf(map[string]*model.Question{"x": q}, "x")
	if _, err := Validate(index, map[string]any{"x": "v"}); !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name      string
		validator model.Validator
		value     any
		want      bool
	}{
		{"text min", model.TextValidator{MinLength: 3}, "ab", false},
		{"text max", model.TextValidator{MaxLength: 3}, "abcd", false},
		{"text unbounded", model.TextValidator{}, "a long answer", true},
		{"text digits", model.TextValidator{DisallowDigits: true}, "abc1", false},
		{"text no digits", model.TextValidator{DisallowDigits: true}, "abc", true},
		{"text runes", model.TextValidator{MaxLength: 4}, "ñandú", false},
		{"text float integral", model.TextValidator{MaxLength: 8}, float64(12345678), true},
		{"text float fraction", model.TextValidator{MinLength: 4, MaxLength: 4}, 2.25, true},
		{"numeric in range", model.NumericValidator{MinValue: 1, MaxValue: 10}, 5, true},
		{"numeric below", model.NumericValidator{MinValue: 1}, 0.5, false},
		{"numeric open max", model.NumericValidator{MinValue: 1}, 1e9, true},
		{"numeric string", model.NumericValidator{MaxValue: 10}, "7", true},
		{"numeric garbage", model.NumericValidator{}, "seven", false},
		{"numeric nil", model.NumericValidator{}, nil, false},
		{"email ok", model.EmailValidator{}, "ada@example.com", true},
		{"email idn", model.EmailValidator{}, "ada@bücher.de", true},
		{"email display name", model.EmailValidator{}, "Ada <ada@example.com>", false},
		{"email no domain dot", model.EmailValidator{}, "ada@localhost", false},
		{"email missing at", model.EmailValidator{}, "ada.example.com", false},
		{"email non string", model.EmailValidator{}, 42, false},
		{"regex prefix", model.RegexValidator{Regex: `\d{3}`}, "123abc", true},
		{"regex not anchored at start", model.RegexValidator{Regex: `\d{3}`}, "abc123", false},
		{"regex invalid", model.RegexValidator{Regex: `(`}, "(", false},
	}
	for _, tc := range cases {
		got, err := check(tc.validator, tc.value, nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestExpressionValidator(t *testing.T) {
	validator := model.ExpressionValidator{Expression: "{var2} notempty and {var3} > 5"}

	cases := []struct {
		values map[string]any
		want   bool
	}{
		{map[string]any{"var2": "", "var3": 1}, false},
		{map[string]any{"var2": "other", "var3": 8}, true},
		{map[string]any{"var3": 8}, false},
		{map[string]any{"var2": []any{}, "var3": 8}, false},
	}
	for _, tc := range cases {
		got, err := check(validator, nil, tc.values)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if got != tc.want {
			t.Fatalf("values %v: got %v want %v", tc.values, got, tc.want)
		}
	}

	if ok, _ := check(model.ExpressionValidator{}, nil, nil); !ok {
		t.Fatalf("empty expression must pass")
	}
	if ok, _ := check(model.ExpressionValidator{Expression: "{a} >"}, nil, map[string]any{"a": 1}); ok {
		t.Fatalf("malformed expression must fail")
	}
	anyof := model.ExpressionValidator{Expression: "{color} anyof ['red', 'blue']"}
	if ok, _ := check(anyof, nil, map[string]any{"color": "blue"}); !ok {
		t.Fatalf("anyof should pass for a listed value")
	}
}

func TestRewriteExpression(t *testing.T) {
	cases := map[string]string{
		"{a} empty":                "a in [[], {}]",
		"{a} notempty":             "a not in [[], {}]",
		"{a} anyof ['x']":          "a in ['x']",
		"{a} > 1 and {b} notempty": "a > 1 and b not in [[], {}]",
	}
	for in, want := range cases {
		if got := RewriteExpression(in); got != want {
			t.Fatalf("RewriteExpression(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate_DecodedNumberLength(t *testing.T) {
	index := indexOf(map[string]*model.Question{
		"zip": model.Text(model.WithValidators(model.TextValidator{Message: "eight digits", MinLength: 8, MaxLength: 8})),
	}, "zip")

	var values map[string]any
	if err := json.Unmarshal([]byte(`{"zip": 12345678}`), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	result, err := Validate(index, values)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Passed {
		t.Fatalf("decoded integer should measure 8 characters: %+v", result.Issues)
	}
}

func TestValidate_UnansweredOptionalSkipsValueValidators(t *testing.T) {
	index := indexOf(map[string]*model.Question{
		"age": model.Text(model.WithValidators(
			model.NumericValidator{Message: "adult", MinValue: 18},
			model.TextValidator{Message: "short", MinLength: 1},
		)),
		"email": model.Text(model.WithValidators(
			model.EmailValidator{Message: "email"},
			model.RegexValidator{Message: "regex", Regex: `\w+@`},
		)),
		"terms": model.Boolean(model.WithValidators(
			model.ExpressionValidator{Message: "accept the terms", Expression: "{terms} == true"},
		)),
	}, "age", "email", "terms")

	result, err := Validate(index, map[string]any{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []Issue{{Question: "terms", Message: "accept the terms"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}

	result, err = Validate(index, map[string]any{"age": 12, "terms": true})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want = []Issue{{Question: "age", Message: "adult"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("answered issues (-want +got):\n%s", diff)
	}
}
