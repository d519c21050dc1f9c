package wire

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questions/pkg/assembler"
	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/testsupport"
)

func assemble(t *testing.T, def *model.Definition) *model.Survey {
	t.Helper()
	result, err := assembler.Assemble(def)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return result.Survey
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func firstQuestion(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	pages := doc["pages"].([]any)
	questions := pages[0].(map[string]any)["questions"].([]any)
	return questions[0].(map[string]any)
}

func TestMarshal_WireNames(t *testing.T) {
	def := model.NewDefinition("Profile", model.WithFormParam("show_progress_bar", "top")).
		Add("email", model.Text(
			model.Required(),
			model.WithParam("input_type", "email"),
			model.WithValidators(model.EmailValidator{Message: "Bad email"}),
		))

	raw, err := Marshal(assemble(t, def))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc := decode(t, raw)
	if doc["showProgressBar"] != "top" {
		t.Fatalf("survey params should be camelCased, got %v", doc["showProgressBar"])
	}
	question := firstQuestion(t, doc)
	if question["type"] != "text" || question["name"] != "email" || question["isRequired"] != true {
		t.Fatalf("unexpected question: %v", question)
	}
	if question["inputType"] != "email" {
		t.Fatalf("expected inputType, got %v", question["inputType"])
	}
	want := []any{map[string]any{"type": "email", "message": "Bad email"}}
	if diff := cmp.Diff(want, question["validators"]); diff != "" {
		t.Fatalf("validators (-want +got):\n%s", diff)
	}
}

func TestMarshal_KeyOrder(t *testing.T) {
	def := model.NewDefinition("F").Add("q", model.Text())
	raw, err := Marshal(assemble(t, def), OmitDefaults())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"pages":[{"name":"default","questions":[{"type":"text","name":"q"}]}]}`
	if string(raw) != want {
		t.Fatalf("unexpected document:\n got %s\nwant %s", raw, want)
	}
}

func TestMarshal_AllowListDropsServerSideKeys(t *testing.T) {
	def := model.NewDefinition("F").
		Add("tags", model.TagBox(model.WithParam("custom_flag", true))).
		Add("pick", model.Select2())

	raw, err := Marshal(assemble(t, def))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc := decode(t, raw)
	tags := firstQuestion(t, doc)
	for _, key := range []string{"extraJs", "extraCss", "customFlag", "custom_flag"} {
		if _, ok := tags[key]; ok {
			t.Fatalf("key %q should not reach the wire", key)
		}
	}
	pick := doc["pages"].([]any)[0].(map[string]any)["questions"].([]any)[1].(map[string]any)
	if pick["renderAs"] != "select2" {
		t.Fatalf("allow-listed passthrough renderAs missing: %v", pick)
	}
}

func TestMarshal_DefaultsEmittedUnlessOmitted(t *testing.T) {
	def := model.NewDefinition("F").Add("c", model.Comment())

	full, err := Marshal(assemble(t, def))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if firstQuestion(t, decode(t, full))["rows"] != float64(3) {
		t.Fatalf("declared defaults should be emitted")
	}

	trimmed, err := Marshal(assemble(t, def), OmitDefaults())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := map[string]any{"type": "comment", "name": "c"}
	if diff := cmp.Diff(want, firstQuestion(t, decode(t, trimmed))); diff != "" {
		t.Fatalf("trimmed question (-want +got):\n%s", diff)
	}
}

func TestMarshal_NestedPanels(t *testing.T) {
	panel := model.NewDefinition("Panel1").Add("q1", model.Text())
	page := model.NewDefinition("Page1").AddDynamicPanel("panel", panel)
	form := model.NewDefinition("Survey").AddPage("page", page)

	raw, err := Marshal(assemble(t, form), OmitDefaults())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"pages":[{"name":"default","questions":[]},{"name":"Page1","questions":[` +
		`{"type":"paneldynamic","name":"Panel1","templateElements":[{"type":"text","name":"q1"}]}]}]}`
	if diff := testsupport.CompareJSON(t, []byte(want), raw); diff != "" {
		t.Fatalf("document (-want +got):\n%s", diff)
	}
}

func TestMarshalYAML(t *testing.T) {
	def := model.NewDefinition("F").Add("q", model.Boolean())
	raw, err := MarshalYAML(assemble(t, def), OmitDefaults())
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	imported, err := UnmarshalYAML(raw, "F")
	if err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	members := imported.Members()
	if len(members) != 1 || members[0].Question == nil || members[0].Question.Kind != model.KindBoolean {
		t.Fatalf("unexpected members: %+v", members)
	}
}

func TestUnmarshal_Fixture(t *testing.T) {
	def, err := Unmarshal(testsupport.MustReadFixture(t, "testdata/profile.json"), "Profile")
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.Params["title"] != "Profile" || def.Params["show_progress_bar"] != "top" {
		t.Fatalf("unexpected form params: %v", def.Params)
	}

	result, err := assembler.Assemble(def)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	wantNames := []string{"first_name", "age", "tags", "street", "notes", "phone"}
	if diff := cmp.Diff(wantNames, result.Index.Names()); diff != "" {
		t.Fatalf("index (-want +got):\n%s", diff)
	}

	first, _ := result.Index.Get("first_name")
	if !first.Required || first.Title != "First name" {
		t.Fatalf("unexpected first_name: %+v", first)
	}
	age, _ := result.Index.Get("age")
	if diff := cmp.Diff([]model.Validator{model.NumericValidator{Message: "Too young", MinValue: 18}}, age.Validators); diff != "" {
		t.Fatalf("age validators (-want +got):\n%s", diff)
	}
	if v, _ := age.Param("input_type"); v != "number" {
		t.Fatalf("expected input_type number, got %v", v)
	}
	tags, _ := result.Index.Get("tags")
	if len(tags.ExtraJS) == 0 {
		t.Fatalf("widget assets should be restored from the kind")
	}

	pages := result.Survey.Pages
	if len(pages) != 2 || pages[1].Name != "address" || pages[1].Params["title"] != "Where do you live?" {
		t.Fatalf("unexpected pages: %+v", pages)
	}
	dynamic := pages[1].Elements[1]
	if dynamic.Kind != model.KindPanelDynamic || dynamic.Name != "Phones" {
		t.Fatalf("dynamic panel should take its title as name, got %+v", dynamic)
	}
}

func TestUnmarshal_ContainerNamesFromTitles(t *testing.T) {
	doc := `{"pages": [
	  {"title": "contact details", "elements": [
	    {"type": "panel", "title": "émail box", "elements": [{"type": "text", "name": "email"}]},
	    {"type": "panel", "elements": [{"type": "text", "name": "phone"}]},
	    {"type": "panel", "name": "keepCase", "title": "ignored", "elements": [{"type": "text", "name": "fax"}]}
	  ]},
	  {"elements": [{"type": "comment", "name": "notes"}]}
	]}`
	def, err := Unmarshal([]byte(doc), "Contact")
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	result, err := assembler.Assemble(def)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	var pageNames []string
	for _, page := range result.Survey.Pages {
		pageNames = append(pageNames, page.Name)
	}
	if diff := cmp.Diff([]string{model.DefaultPageName, "Contact details", "Page"}, pageNames); diff != "" {
		t.Fatalf("page names (-want +got):\n%s", diff)
	}

	var panelNames []string
	for _, element := range result.Survey.Pages[1].Elements {
		panelNames = append(panelNames, element.Name)
	}
	if diff := cmp.Diff([]string{"Émail box", "Panel", "keepCase"}, panelNames); diff != "" {
		t.Fatalf("panel names (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"pages": [`), "F"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	doc := `{"pages":[{"name":"p","questions":[{"type":"text","name":"q","validators":[{"type":"answercount"}]}]}]}`
	if _, err := Unmarshal([]byte(doc), "F"); !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	inner := model.NewDefinition("Member").
		Add("member_name", model.Text(model.WithValidators(model.TextValidator{MinLength: 2, DisallowDigits: true})))
	details := model.NewDefinition("Details").
		AddPanel("contact", model.NewDefinition("Contact").
			Add("email", model.Text(model.WithValidators(model.EmailValidator{})))).
		AddDynamicPanel("members", inner, model.WrapperParam("panel_count", 2))
	form := model.NewDefinition("Team", model.WithFormParam("title", "Team sign up")).
		Add("team_name", model.Text(model.Required(), model.WithTitle("Team name"))).
		Add("size", model.Text(model.WithValidators(model.NumericValidator{MinValue: 1, MaxValue: 12}))).
		Add("agree", model.Boolean(model.WithValidators(model.ExpressionValidator{Expression: "{agree} == true"}))).
		Add("tags", model.TagBox(model.WithChoices("a", "b"))).
		AddPage("details", details)

	for _, opts := range [][]Option{nil, {OmitDefaults()}} {
		first, err := Marshal(assemble(t, form), opts...)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		imported, err := Unmarshal(first, "Team")
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		second, err := Marshal(assemble(t, imported), opts...)
		if err != nil {
			t.Fatalf("marshal again: %v", err)
		}
		if diff := testsupport.CompareJSON(t, first, second); diff != "" {
			t.Fatalf("round trip changed the document (-first +second):\n%s", diff)
		}
	}
}
