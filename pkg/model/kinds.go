package model

import (
	"fmt"
	"sort"
)

// Kind tags a question or container variant. The values are the SurveyJS
// element type names.
type Kind string

const (
	KindText                Kind = "text"
	KindComment             Kind = "comment"
	KindRadioGroup          Kind = "radiogroup"
	KindDropdown            Kind = "dropdown"
	KindCheckbox            Kind = "checkbox"
	KindImagePicker         Kind = "imagepicker"
	KindBoolean             Kind = "boolean"
	KindSignaturePad        Kind = "signaturepad"
	KindMultipleText        Kind = "multipletext"
	KindRating              Kind = "rating"
	KindFile                Kind = "file"
	KindMatrix              Kind = "matrix"
	KindMatrixDropdown      Kind = "matrixdropdown"
	KindMatrixDynamic       Kind = "matrixdynamic"
	KindTagBox              Kind = "tagbox"
	KindDatePicker          Kind = "datepicker"
	KindBootstrapDatePicker Kind = "bootstrapdatepicker"
	KindBarRating           Kind = "barrating"
	KindSortableList        Kind = "sortablelist"
	KindNoUISlider          Kind = "nouislider"
	KindEditor              Kind = "editor"
	KindBootstrapSlider     Kind = "bootstrapslider"
	KindEmotionsRatings     Kind = "emotionsratings"
	KindMicrophone          Kind = "microphone"
	KindHTML                Kind = "html"
	KindImage               Kind = "image"
	KindExpression          Kind = "expression"

	KindPanel        Kind = "panel"
	KindPanelDynamic Kind = "paneldynamic"
)

// Attr declares one attribute of a kind. Container attributes hold child
// elements and carry no default.
type Attr struct {
	Name      string
	Default   any
	Container bool
}

// KindSpec is the declared attribute set of a kind in declaration order.
type KindSpec struct {
	Kind  Kind
	Attrs []Attr
}

// Default returns the declared default for an attribute.
func (s KindSpec) Default(name string) (any, bool) {
	for _, attr := range s.Attrs {
		if attr.Name == name {
			return cloneValue(attr.Default), true
		}
	}
	return nil, false
}

// Declares reports whether the attribute belongs to the declared set.
func (s KindSpec) Declares(name string) bool {
	_, ok := s.Default(name)
	return ok
}

// IsContainer reports whether the kind holds child elements.
func (k Kind) IsContainer() bool {
	return k == KindPanel || k == KindPanelDynamic
}

// Spec returns the attribute set declared for kind.
func Spec(kind Kind) (KindSpec, bool) {
	spec, ok := specs[kind]
	return spec, ok
}

// MustSpec is Spec for callers holding a kind produced by this package. An
// unknown kind is a programming error.
func MustSpec(kind Kind) KindSpec {
	spec, ok := specs[kind]
	if !ok {
		panic(fmt.Sprintf("model: unrecognized field kind %q", kind))
	}
	return spec
}

// QuestionKinds lists every question kind (containers excluded) in lexical
// order.
func QuestionKinds() []Kind {
	out := make([]Kind, 0, len(specs))
	for kind := range specs {
		if kind.IsContainer() {
			continue
		}
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsQuestionKind reports whether kind names a known question variant.
func IsQuestionKind(kind Kind) bool {
	_, ok := specs[kind]
	return ok && !kind.IsContainer()
}

// SurveySpec is the attribute set of the survey root. The "pages" attribute is
// the container slot.
var SurveySpec = KindSpec{Attrs: []Attr{
	{Name: "title", Default: ""},
	{Name: "pages", Container: true},
	{Name: "calculated_values", Default: []any{}},
	{Name: "check_errors_mode", Default: "onNextPage"},
	{Name: "clear_invisible_values", Default: "onComplete"},
	{Name: "completed_before_html", Default: ""},
	{Name: "completed_html", Default: ""},
	{Name: "completed_html_on_condition", Default: []any{}},
	{Name: "complete_text", Default: ""},
	{Name: "cookie_name", Default: ""},
	{Name: "description", Default: ""},
	{Name: "edit_text", Default: ""},
	{Name: "first_page_is_started", Default: false},
	{Name: "focus_first_question_automatic", Default: true},
	{Name: "focus_on_first_error", Default: true},
	{Name: "go_next_page_automatic", Default: false},
	{Name: "loading_html", Default: ""},
	{Name: "locale", Default: ""},
	{Name: "logo", Default: ""},
	{Name: "logo_fit", Default: "contain"},
	{Name: "logo_height", Default: 200},
	{Name: "logo_position", Default: "left"},
	{Name: "logo_width", Default: 300},
	{Name: "max_others_length", Default: 0},
	{Name: "max_text_length", Default: 0},
	{Name: "max_time_to_finish", Default: 0},
	{Name: "mode", Default: "edit"},
	{Name: "navigate_to_url", Default: ""},
	{Name: "navigate_to_url_on_condition", Default: []any{}},
	{Name: "page_next_text", Default: ""},
	{Name: "page_prev_text", Default: ""},
	{Name: "preview_text", Default: ""},
	{Name: "progress_bar_type", Default: "pages"},
	{Name: "question_description_location", Default: "underTitle"},
	{Name: "question_error_location", Default: "top"},
	{Name: "questions_on_page_mode", Default: "standard"},
	{Name: "questions_order", Default: "initial"},
	{Name: "question_start_index", Default: ""},
	{Name: "question_title_location", Default: "top"},
	{Name: "question_title_pattern", Default: "numTitleRequire"},
	{Name: "question_title_template", Default: ""},
	{Name: "required_text", Default: "*"},
	{Name: "send_result_on_page_next", Default: false},
	{Name: "show_completed_page", Default: false},
	{Name: "show_navigation_buttons", Default: "bottom"},
	{Name: "show_page_numbers", Default: true},
	{Name: "show_page_titles", Default: true},
	{Name: "show_prev_button", Default: true},
	{Name: "show_preview_before_complete", Default: "noPreview"},
	{Name: "show_progress_bar", Default: "off"},
	{Name: "show_question_numbers", Default: "on"},
	{Name: "show_timer_panel", Default: "none"},
	{Name: "show_timer_panel_mode", Default: "all"},
	{Name: "show_title", Default: true},
	{Name: "start_survey_text", Default: ""},
	{Name: "store_others_as_comment", Default: true},
	{Name: "survey_id", Default: ""},
	{Name: "survey_post_id", Default: ""},
	{Name: "survey_show_data_saving", Default: true},
	{Name: "text_update_mode", Default: "onBlur"},
	{Name: "triggers", Default: []any{}},
}}

// PageSpec is the attribute set of a page. The "questions" attribute is the
// container slot.
var PageSpec = KindSpec{Attrs: []Attr{
	{Name: "name", Default: ""},
	{Name: "title", Default: ""},
	{Name: "questions", Container: true},
	{Name: "description", Default: ""},
	{Name: "max_time_to_finish", Default: 0},
	{Name: "navigation_buttons_visibility", Default: "inherit"},
	{Name: "question_title_location", Default: "default"},
	{Name: "questions_order", Default: "default"},
}}

var baseAttrs = []Attr{
	{Name: "kind", Default: ""},
	{Name: "name", Default: ""},
	{Name: "title", Default: ""},
	{Name: "description", Default: ""},
	{Name: "required", Default: false},
	{Name: "visible", Default: true},
	{Name: "default_value", Default: ""},
	{Name: "correct_answer", Default: ""},
	{Name: "visible_if", Default: ""},
	{Name: "enable_if", Default: ""},
	{Name: "start_with_new_line", Default: true},
	{Name: "value_name", Default: ""},
	{Name: "required_if", Default: ""},
	{Name: "required_error_text", Default: ""},
	{Name: "hide_number", Default: true},
	{Name: "indent", Default: 0},
	{Name: "title_location", Default: "default"},
	{Name: "description_location", Default: "default"},
	{Name: "width", Default: ""},
	{Name: "max_width", Default: "initial"},
	{Name: "min_width", Default: "300px"},
	{Name: "use_display_values_in_title", Default: true},
	{Name: "validators", Default: []any{}},
}

var textAttrs = []Attr{
	{Name: "place_holder", Default: ""},
	{Name: "input_type", Default: "text"},
	{Name: "max_length", Default: -1},
	{Name: "max_value", Default: ""},
	{Name: "min_value", Default: ""},
	{Name: "size", Default: 0},
	{Name: "step", Default: ""},
	{Name: "text_update_mode", Default: "default"},
	{Name: "input_mask", Default: ""},
	{Name: "input_format", Default: ""},
	{Name: "prefix", Default: ""},
	{Name: "auto_unmask", Default: true},
}

var choicesAttrs = []Attr{
	{Name: "col_count", Default: 4},
	{Name: "choices", Default: []any{}},
	{Name: "choices_by_url", Default: map[string]any{}},
	{Name: "choices_order", Default: "none"},
	{Name: "choices_enable_if", Default: ""},
	{Name: "choices_visible_if", Default: ""},
	{Name: "hide_if_choices_empty", Default: true},
	{Name: "has_other", Default: false},
	{Name: "other_text", Default: "Other"},
	{Name: "other_error_text", Default: ""},
	{Name: "other_place_holder", Default: ""},
}

var dropdownAttrs = []Attr{
	{Name: "choices_max", Default: 0},
	{Name: "choices_min", Default: 0},
	{Name: "choices_step", Default: 1},
	{Name: "options_caption", Default: ""},
	{Name: "show_options_caption", Default: true},
}

var checkboxAttrs = []Attr{
	{Name: "has_none", Default: false},
	{Name: "has_select_all", Default: false},
	{Name: "none_text", Default: "None"},
	{Name: "select_all_text", Default: ""},
}

var matrixAttrs = []Attr{
	{Name: "columns", Default: []any{}},
	{Name: "rows", Default: []any{}},
	{Name: "all_rows_required", Default: false},
	{Name: "cells", Default: map[string]any{}},
	{Name: "columns_visible_if", Default: ""},
	{Name: "rows_order", Default: "initial"},
	{Name: "rows_visible_if", Default: ""},
	{Name: "show_header", Default: true},
}

var matrixDropdownAttrs = []Attr{
	{Name: "cell_type", Default: "dropdown"},
	{Name: "choices", Default: []any{}},
	{Name: "column_col_count", Default: 1},
	{Name: "column_layout", Default: "horizontal"},
	{Name: "column_min_width", Default: ""},
	{Name: "horizontal_scroll", Default: false},
	{Name: "options_caption", Default: ""},
}

var sliderAttrs = []Attr{
	{Name: "step", Default: 1},
	{Name: "range_min", Default: 0},
	{Name: "range_max", Default: 100},
}

var imageAttrs = []Attr{
	{Name: "image_height", Default: 200},
	{Name: "image_width", Default: 300},
	{Name: "image_fit", Default: "none"},
}

// compose joins attribute groups. A later group redeclaring an attribute
// replaces its default in place.
func compose(groups ...[]Attr) []Attr {
	var out []Attr
	index := map[string]int{}
	for _, group := range groups {
		for _, attr := range group {
			if pos, ok := index[attr.Name]; ok {
				out[pos] = attr
				continue
			}
			index[attr.Name] = len(out)
			out = append(out, attr)
		}
	}
	return out
}

func kindSpec(kind Kind, groups ...[]Attr) KindSpec {
	groups = append([][]Attr{baseAttrs}, groups...)
	attrs := compose(groups...)
	attrs[0] = Attr{Name: "kind", Default: string(kind)}
	return KindSpec{Kind: kind, Attrs: attrs}
}

var specs = func() map[Kind]KindSpec {
	out := map[Kind]KindSpec{}
	add := func(spec KindSpec) { out[spec.Kind] = spec }

	add(kindSpec(KindText, textAttrs))
	add(kindSpec(KindComment, []Attr{
		{Name: "rows", Default: 3},
		{Name: "cols", Default: 50},
		{Name: "max_length", Default: -1},
		{Name: "place_holder", Default: ""},
		{Name: "text_update_mode", Default: "default"},
	}))
	add(kindSpec(KindRadioGroup, choicesAttrs, []Attr{
		{Name: "show_clear_button", Default: false},
	}))
	add(kindSpec(KindDropdown, choicesAttrs, dropdownAttrs))
	add(kindSpec(KindCheckbox, choicesAttrs, checkboxAttrs))
	add(kindSpec(KindImagePicker, choicesAttrs, []Attr{
		{Name: "content_mode", Default: "image"},
		{Name: "show_label", Default: false},
		{Name: "image_height", Default: 200},
		{Name: "image_width", Default: 300},
		{Name: "image_fit", Default: "none"},
		{Name: "multi_select", Default: false},
	}))
	add(kindSpec(KindBoolean, []Attr{
		{Name: "label_true", Default: ""},
		{Name: "label_false", Default: ""},
		{Name: "show_title", Default: false},
		{Name: "value_true", Default: "true"},
		{Name: "value_false", Default: "false"},
	}))
	add(kindSpec(KindSignaturePad, []Attr{
		{Name: "height", Default: 200},
		{Name: "width", Default: 300},
		{Name: "allow_clear", Default: true},
	}))
	add(kindSpec(KindMultipleText, []Attr{
		{Name: "col_count", Default: 2},
		{Name: "items", Default: []any{}},
		{Name: "item_size", Default: 0},
	}))
	add(kindSpec(KindRating, []Attr{
		{Name: "min_rate_description", Default: ""},
		{Name: "max_rate_description", Default: ""},
		{Name: "rate_max", Default: 5},
		{Name: "rate_min", Default: 1},
		{Name: "rate_step", Default: 1},
		{Name: "rate_values", Default: []any{}},
	}))
	add(kindSpec(KindFile, []Attr{
		{Name: "show_preview", Default: true},
		{Name: "allow_multiple", Default: false},
		{Name: "store_data_as_text", Default: true},
		{Name: "image_height", Default: 100},
		{Name: "image_width", Default: 150},
		{Name: "max_size", Default: 0},
		{Name: "accepted_types", Default: ""},
		{Name: "allow_images_preview", Default: true},
		{Name: "need_confirm_remove_file", Default: false},
		{Name: "wait_for_upload", Default: true},
	}))
	add(kindSpec(KindMatrix, matrixAttrs))
	add(kindSpec(KindMatrixDropdown, matrixAttrs, matrixDropdownAttrs, []Attr{
		{Name: "row_title_width", Default: ""},
		{Name: "total_text", Default: ""},
	}))
	add(kindSpec(KindMatrixDynamic, matrixAttrs, matrixDropdownAttrs, []Attr{
		{Name: "add_row_location", Default: "default"},
		{Name: "add_row_text", Default: ""},
		{Name: "allow_add_rows", Default: true},
		{Name: "allow_remove_rows", Default: true},
		{Name: "confirm_delete", Default: false},
		{Name: "confirm_delete_text", Default: ""},
		{Name: "default_row_value", Default: ""},
		{Name: "default_value_from_last_row", Default: false},
		{Name: "key_duplication_error", Default: ""},
		{Name: "key_name", Default: ""},
		{Name: "max_row_count", Default: 100},
		{Name: "min_row_count", Default: 1},
		{Name: "remove_row_text", Default: ""},
		{Name: "row_count", Default: 1},
	}))
	add(kindSpec(KindTagBox, choicesAttrs, dropdownAttrs, []Attr{
		{Name: "select2_config", Default: ""},
	}))
	add(kindSpec(KindDatePicker, textAttrs, []Attr{
		{Name: "date_format", Default: "mm/dd/yy"},
		{Name: "config", Default: ""},
		{Name: "max_date", Default: ""},
		{Name: "min_date", Default: ""},
	}))
	add(kindSpec(KindBootstrapDatePicker, textAttrs, []Attr{
		{Name: "date_format", Default: "mm/dd/yy"},
		{Name: "start_date", Default: ""},
		{Name: "end_date", Default: ""},
		{Name: "today_highlight", Default: true},
		{Name: "week_start", Default: 0},
		{Name: "clear_button", Default: false},
		{Name: "auto_close", Default: true},
		{Name: "days_of_week_highlighted", Default: ""},
		{Name: "disable_touch_keyboard", Default: true},
	}))
	add(kindSpec(KindBarRating, choicesAttrs, dropdownAttrs, []Attr{
		{Name: "rating_theme", Default: "fontawesome-stars"},
		{Name: "show_values", Default: false},
	}))
	add(kindSpec(KindSortableList, choicesAttrs, checkboxAttrs, []Attr{
		{Name: "empty_text", Default: ""},
		{Name: "max_answers_count", Default: -1},
	}))
	add(kindSpec(KindNoUISlider, sliderAttrs, []Attr{
		{Name: "pips_mode", Default: "positions"},
		{Name: "pips_values", Default: []any{0, 25, 50, 75, 100}},
		{Name: "pips_text", Default: []any{0, 25, 50, 75, 100}},
		{Name: "pips_density", Default: 5},
		{Name: "orientation", Default: "horizontal"},
		{Name: "direction", Default: "ltr"},
		{Name: "tooltips", Default: true},
	}))
	add(kindSpec(KindEditor, []Attr{
		{Name: "height", Default: "300px"},
	}))
	add(kindSpec(KindBootstrapSlider, sliderAttrs))
	add(kindSpec(KindEmotionsRatings, choicesAttrs, dropdownAttrs, []Attr{
		{Name: "emotions", Default: []any{"angry", "disappointed", "meh", "happy", "inLove"}},
		{Name: "emotion_size", Default: 30},
		{Name: "emotions_count", Default: 5},
		{Name: "bg_emotion", Default: "happy"},
		{Name: "emotion_color", Default: "FF0066"},
	}))
	add(kindSpec(KindMicrophone))
	add(kindSpec(KindHTML, []Attr{
		{Name: "html", Default: ""},
	}))
	add(kindSpec(KindImage, imageAttrs, []Attr{
		{Name: "image_link", Default: ""},
		{Name: "content_mode", Default: "image"},
	}))
	add(kindSpec(KindExpression, []Attr{
		{Name: "expression", Default: ""},
		{Name: "currency", Default: "USD"},
		{Name: "display_style", Default: "none"},
		{Name: "expression_format", Default: ""},
		{Name: "maximum_fraction_digits", Default: -1},
		{Name: "minimum_fraction_digits", Default: -1},
		{Name: "use_grouping", Default: true},
	}))
	add(kindSpec(KindPanel, []Attr{
		{Name: "inner_indent", Default: 1},
		{Name: "elements", Container: true},
		{Name: "question_start_index", Default: ""},
		{Name: "question_title_location", Default: "default"},
		{Name: "show_number", Default: false},
		{Name: "show_question_numbers", Default: "default"},
		{Name: "state", Default: "default"},
	}))
	add(kindSpec(KindPanelDynamic, []Attr{
		{Name: "inner_indent", Default: 1},
		{Name: "render_mode", Default: "list"},
		{Name: "panel_count", Default: 1},
		{Name: "panel_add_text", Default: ""},
		{Name: "panel_remove_text", Default: ""},
		{Name: "template_title", Default: ""},
		{Name: "template_elements", Container: true},
		{Name: "allow_add_panel", Default: true},
		{Name: "allow_remove_panel", Default: true},
		{Name: "confirm_delete", Default: false},
		{Name: "confirm_delete_text", Default: ""},
		{Name: "default_value_from_last_panel", Default: false},
		{Name: "key_duplication_error", Default: ""},
		{Name: "key_name", Default: ""},
		{Name: "max_panel_count", Default: 100},
		{Name: "min_panel_count", Default: 1},
		{Name: "panel_next_text", Default: ""},
		{Name: "panel_prev_text", Default: ""},
		{Name: "panels_state", Default: "default"},
		{Name: "show_question_numbers", Default: "default"},
		{Name: "show_range_in_progress", Default: true},
		{Name: "template_description", Default: ""},
		{Name: "template_title_location", Default: "default"},
	}))
	return out
}()
