package form_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/render"
	"github.com/goliatone/go-questions/pkg/resources"
	"github.com/goliatone/go-questions/pkg/testsupport"
	"github.com/goliatone/go-questions/pkg/validation"
	"github.com/goliatone/go-questions/pkg/wire"
)

func profileDefinition() *model.Definition {
	return model.NewDefinition("Profile", model.WithFormParam("title", "Your profile")).
		Add("name", model.Comment(model.Required())).
		Add("age", model.Text(
			model.WithParam("input_type", "number"),
			model.WithValidators(model.NumericValidator{Message: "Adults only", MinValue: 18}),
		)).
		Add("newsletter", model.Boolean())
}

func TestNew_Defaults(t *testing.T) {
	f, err := form.New(profileDefinition())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	got := []string{f.Name(), f.HTMLID(), f.Theme(), f.Platform(), f.ResourceURL(), f.Action()}
	want := []string{"Profile", form.DefaultHTMLID, form.DefaultTheme, form.DefaultPlatform, resources.CDN, ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := form.New(nil); !errors.Is(err, form.ErrNilDefinition) {
		t.Fatalf("expected ErrNilDefinition, got %v", err)
	}
	if _, err := form.New(profileDefinition(), form.WithPlatform("svelte")); !errors.Is(err, resources.ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestToJSON(t *testing.T) {
	def := model.NewDefinition("Tiny").Add("ok", model.Boolean())
	f, err := form.New(def, form.WithParam("title", "Tiny form"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	got, err := f.ToJSON(wire.OmitDefaults())
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	want := []byte(`{"title":"Tiny form","pages":[{"name":"default","questions":[{"type":"boolean","name":"ok"}]}]}`)
	if diff := testsupport.CompareJSON(t, want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if def.Params != nil {
		t.Fatalf("form params must not leak into the definition: %v", def.Params)
	}
}

func TestAssets(t *testing.T) {
	def := model.NewDefinition("Tags").Add("tags", model.TagBox())
	f, err := form.New(def)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	required := []string{
		"https://unpkg.com/jquery@3.5.1/dist/jquery.js",
		"https://unpkg.com/survey-jquery/survey.jquery.min.js",
	}
	if diff := cmp.Diff(required, f.RequiredJS()); diff != "" {
		t.Fatalf("required js (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://unpkg.com/survey-core/survey.min.css"}, f.RequiredCSS()); diff != "" {
		t.Fatalf("required css (-want +got):\n%s", diff)
	}

	js, err := f.JS()
	if err != nil {
		t.Fatalf("js: %v", err)
	}
	wantJS := append(append([]string(nil), required...),
		"https://cdnjs.cloudflare.com/ajax/libs/select2/4.0.4/js/select2.min.js",
		"https://unpkg.com/surveyjs-widgets/surveyjs-widgets.min.js",
	)
	if diff := cmp.Diff(wantJS, js); diff != "" {
		t.Fatalf("js (-want +got):\n%s", diff)
	}

	css, err := f.CSS()
	if err != nil {
		t.Fatalf("css: %v", err)
	}
	wantCSS := []string{
		"https://unpkg.com/survey-core/survey.min.css",
		"https://cdnjs.cloudflare.com/ajax/libs/select2/4.0.4/css/select2.min.css",
	}
	if diff := cmp.Diff(wantCSS, css); diff != "" {
		t.Fatalf("css (-want +got):\n%s", diff)
	}
}

func TestAssets_SelfHosted(t *testing.T) {
	f, err := form.New(model.NewDefinition("Plain").Add("ok", model.Boolean()),
		form.WithResourceURL("http://assets.local/"),
		form.WithTheme("modern"),
		form.WithPlatform("vue"),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	wantJS := []string{"http://assets.local/vue.js", "http://assets.local/survey-vue/survey.vue.min.js"}
	if diff := cmp.Diff(wantJS, f.RequiredJS()); diff != "" {
		t.Fatalf("required js (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"http://assets.local/survey-core/modern.min.css"}, f.RequiredCSS()); diff != "" {
		t.Fatalf("required css (-want +got):\n%s", diff)
	}
	extra, err := f.ExtraJS()
	if err != nil {
		t.Fatalf("extra js: %v", err)
	}
	if len(extra) != 0 {
		t.Fatalf("no widget scripts expected, got %v", extra)
	}
}

func TestRenderJS(t *testing.T) {
	f, err := form.New(profileDefinition(), form.WithAction("/profile"), form.WithHTMLID("profile"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	out, err := f.RenderJS(context.Background(), map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render js: %v", err)
	}
	for _, want := range []string{
		`Survey.StylesManager.applyTheme("defaultV2");`,
		`"title":"Your profile"`,
		`survey.data = {"name":"Ada"};`,
		`request.open("POST", "/profile");`,
		`$("#profile").Survey({model: survey});`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("script missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHTML_TitleFallback(t *testing.T) {
	f, err := form.New(profileDefinition())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	out, err := f.RenderHTML(testsupport.Context(), "", nil)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(out, "<title>Your profile</title>") {
		t.Fatalf("expected title param as page title:\n%s", out)
	}
	if !strings.Contains(out, `<script src="https://unpkg.com/survey-jquery/survey.jquery.min.js"></script>`) {
		t.Fatalf("expected platform script:\n%s", out)
	}

	plain, err := form.New(model.NewDefinition("Plain").Add("ok", model.Boolean()))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	out, err = plain.RenderHTML(testsupport.Context(), "", nil)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(out, "<title>Plain</title>") {
		t.Fatalf("expected form name as page title:\n%s", out)
	}
}

func TestRenderJS_MissingRenderer(t *testing.T) {
	f, err := form.New(profileDefinition(), form.WithRegistry(render.NewRegistry()))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if _, err := f.RenderJS(context.Background(), nil); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	f, err := form.New(profileDefinition())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	values := map[string]any{"age": 12}
	result, err := f.Validate(values, true)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failure")
	}
	want := []validation.Issue{
		{Question: "name", Message: validation.RequiredMessage},
		{Question: "age", Message: "Adults only"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, values[validation.DefaultErrorsKey]); diff != "" {
		t.Fatalf("stored issues mismatch (-want +got):\n%s", diff)
	}

	values = map[string]any{"name": "Ada", "age": 30}
	result, err = f.Validate(values, false)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected pass, got %v", result.Issues)
	}
	if _, ok := values[validation.DefaultErrorsKey]; ok {
		t.Fatalf("errors key must only be set on request")
	}
}

func TestString(t *testing.T) {
	f, err := form.New(profileDefinition(), form.WithParam("show_progress_bar", "top"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	want := `Form(name="Profile", show_progress_bar="top", title="Your profile")`
	if got := f.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
