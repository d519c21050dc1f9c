package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewQuestion_WidgetDefaults(t *testing.T) {
	q := TagBox(WithName("tags"))
	if len(q.ExtraJS) != 2 || len(q.ExtraCSS) != 1 {
		t.Fatalf("expected select2 assets on tagbox, got js=%v css=%v", q.ExtraJS, q.ExtraCSS)
	}

	s2 := Select2()
	if s2.Kind != KindDropdown || s2.RenderAs() != "select2" {
		t.Fatalf("select2 should be a dropdown rendered as select2, got %s/%s", s2.Kind, s2.RenderAs())
	}
	if diff := cmp.Diff(q.ExtraJS, s2.ExtraJS); diff != "" {
		t.Fatalf("select2 assets mismatch (-tagbox +select2):\n%s", diff)
	}

	if plain := Dropdown(); len(plain.ExtraJS) != 0 || len(plain.ExtraCSS) != 0 {
		t.Fatalf("plain dropdown should carry no widget assets, got %v %v", plain.ExtraJS, plain.ExtraCSS)
	}
}

func TestNewQuestion_ExplicitAssetsWin(t *testing.T) {
	q := Text(WithExtraJS())
	if len(q.ExtraJS) != 0 {
		t.Fatalf("explicit empty asset list should replace defaults, got %v", q.ExtraJS)
	}
}

func TestNewQuestion_UnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown kind")
		}
	}()
	NewQuestion(Kind("nope"))
}

func TestQuestion_ParamFallsBackToDefault(t *testing.T) {
	q := Rating(WithParam("rate_max", 10))
	if got, _ := q.Param("rate_max"); got != 10 {
		t.Fatalf("expected explicit rate_max, got %v", got)
	}
	if got, _ := q.Param("rate_min"); got != 1 {
		t.Fatalf("expected default rate_min, got %v", got)
	}
	if _, ok := q.Param("not_declared"); ok {
		t.Fatalf("undeclared attribute should not resolve")
	}
}

func TestQuestion_AttributesOrder(t *testing.T) {
	q := Text(
		WithName("first_name"),
		WithTitle("First name"),
		Required(),
		WithParam("input_type", "email"),
		WithParam("zz_custom", "x"),
		WithParam("aa_custom", "y"),
	)
	attrs := q.Attributes()
	if attrs[0].Name != "kind" || attrs[0].Value != "text" {
		t.Fatalf("kind must come first, got %+v", attrs[0])
	}
	if attrs[1].Name != "name" || attrs[1].Value != "first_name" {
		t.Fatalf("name must come second, got %+v", attrs[1])
	}

	byName := map[string]Attribute{}
	for _, attr := range attrs {
		byName[attr.Name] = attr
	}
	if attr := byName["required"]; attr.Value != true || attr.Default {
		t.Fatalf("required should be explicit true, got %+v", attr)
	}
	if attr := byName["input_type"]; attr.Value != "email" || attr.Default {
		t.Fatalf("input_type should be explicit, got %+v", attr)
	}
	if attr := byName["min_width"]; attr.Value != "300px" || !attr.Default {
		t.Fatalf("min_width should fall back to its default, got %+v", attr)
	}

	last := attrs[len(attrs)-2:]
	if last[0].Name != "aa_custom" || last[1].Name != "zz_custom" {
		t.Fatalf("passthrough params should trail in key order, got %s, %s", last[0].Name, last[1].Name)
	}
}

func TestSetParam_RoutesCommonAttributes(t *testing.T) {
	q := Text(WithParams(map[string]any{
		"name":     "age",
		"title":    "Age",
		"required": true,
		"visible":  false,
	}))
	if q.Name != "age" || q.Title != "Age" || !q.Required {
		t.Fatalf("common attributes not routed: %+v", q)
	}
	if q.Params["visible"] != false {
		t.Fatalf("visible should stay a param, got %v", q.Params)
	}
	if _, ok := q.Params["name"]; ok {
		t.Fatalf("name should not be duplicated into params")
	}
}

func TestClone_IsDeep(t *testing.T) {
	q := Checkbox(WithChoices("a", "b"))
	clone := q.Clone()
	clone.Params["choices"].([]any)[0] = "changed"
	clone.Name = "other"
	if q.Params["choices"].([]any)[0] != "a" || q.Name != "" {
		t.Fatalf("clone shares state with original")
	}
}

func TestSpecs_DeclareContainers(t *testing.T) {
	panel := MustSpec(KindPanel)
	if !panel.Declares("elements") {
		t.Fatalf("panel spec must declare elements")
	}
	dynamic := MustSpec(KindPanelDynamic)
	if !dynamic.Declares("template_elements") {
		t.Fatalf("dynamic panel spec must declare template_elements")
	}
	if IsQuestionKind(KindPanel) {
		t.Fatalf("panel is not a question kind")
	}
	if !IsQuestionKind(KindBootstrapSlider) {
		t.Fatalf("bootstrapslider should be a question kind")
	}
	if got := len(QuestionKinds()); got != 27 {
		t.Fatalf("expected 27 question kinds, got %d", got)
	}
}

func TestWrapper_EffectiveName(t *testing.T) {
	inner := NewDefinition("Address")
	def := NewDefinition("Profile").
		AddPanel("address", inner).
		AddPage("extra", inner, WrapperName("Extra"))

	members := def.Members()
	if got := members[0].Wrapper.EffectiveName(); got != "Address" {
		t.Fatalf("expected nested definition name, got %q", got)
	}
	if got := members[1].Wrapper.EffectiveName(); got != "Extra" {
		t.Fatalf("expected explicit wrapper name, got %q", got)
	}
	if members[1].Wrapper.Kind != WrapperPage {
		t.Fatalf("expected page wrapper")
	}
}

func TestIndex_OverwriteKeepsPosition(t *testing.T) {
	idx := NewIndex()
	first := Text()
	second := Comment()
	idx.Set("a", first)
	idx.Set("b", Text())
	idx.Set("a", second)

	if diff := cmp.Diff([]string{"a", "b"}, idx.Names()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if got, _ := idx.Get("a"); got != second {
		t.Fatalf("later question should win")
	}
}

func TestValidatorMessages(t *testing.T) {
	if got := (EmailValidator{}).ErrorMessage(); got != DefaultValidatorMessage {
		t.Fatalf("expected default message, got %q", got)
	}
	if got := (TextValidator{Message: "too short"}).ErrorMessage(); got != "too short" {
		t.Fatalf("expected custom message, got %q", got)
	}
	if !(TextValidator{}).AllowDigits() {
		t.Fatalf("digits are allowed by default")
	}
}
