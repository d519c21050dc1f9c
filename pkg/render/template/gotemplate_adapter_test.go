package template_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-questions/pkg/render/template/gotemplate"
	"github.com/goliatone/go-questions/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tmpl":   {Data: []byte(`Hello {{ name }}!`)},
	"theme.tmpl":   {Data: []byte(`{{ theme|default:default_theme }}`)},
	"answers.tmpl": {Data: []byte(`survey.data = {{ data|tojson }};`)},
	"escape.tmpl":  {Data: []byte(`{{ title }}|{{ payload|safe }}`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureRender(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada!" {
		t.Fatalf("render template mismatch result: %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestGoTemplateEngine_ExtensionIsOptional(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello.tmpl", map[string]any{"name": "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_Globals(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("theme", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "defaultV2" {
		t.Fatalf("expected global fallback, got %q", result)
	}

	result, err = engine.RenderTemplate("theme", map[string]any{"theme": "modern"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "modern" {
		t.Fatalf("expected render data to win, got %q", result)
	}
}

func TestGoTemplateEngine_ToJSON(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name string
		data any
		want string
	}{
		{
			name: "answers",
			data: map[string]any{"name": "Ada", "age": 36, "langs": []any{"en", "fr"}},
			want: `survey.data = {"age":36,"langs":["en","fr"],"name":"Ada"};`,
		},
		{
			name: "empty",
			data: map[string]any{},
			want: `survey.data = {};`,
		},
		{
			name: "script breakout",
			data: map[string]any{"bio": "</script><b>&</b>"},
			want: `survey.data = {"bio":"\u003c/script\u003e\u003cb\u003e\u0026\u003c/b\u003e"};`,
		},
		{
			name: "missing",
			data: nil,
			want: `survey.data = null;`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := map[string]any{}
			if tc.data != nil {
				ctx["data"] = tc.data
			}
			result, err := engine.RenderTemplate("answers", ctx)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if result != tc.want {
				t.Fatalf("unexpected output\nwant: %s\n got: %s", tc.want, result)
			}
		})
	}
}

func TestGoTemplateEngine_Autoescape(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{
		"title":   "<b>Form</b>",
		"payload": `{"a":"<b>"}`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != `&lt;b&gt;Form&lt;/b&gt;|{"a":"<b>"}` {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	type view struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderTemplate("hello", view{Name: "Lin"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Lin!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}

	engine := newEngine(t)
	_, err := engine.RenderTemplate("missing", nil)
	if err == nil || !strings.Contains(err.Error(), "missing.tmpl") {
		t.Fatalf("expected load error naming the template, got %v", err)
	}
	if _, err := engine.RenderTemplate("hello", []string{"x"}); err == nil {
		t.Fatalf("expected error for non object data")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithExtension("tmpl"),
		gotemplate.WithGlobals(map[string]any{"default_theme": "defaultV2"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
