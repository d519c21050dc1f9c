package wire

// Allow-lists of the internal attribute names emitted per level. Anything
// else a tree carries, such as widget assets or ad hoc params, stays
// server side.

var surveyKeys = keySet(
	"title", "calculated_values", "check_errors_mode", "clear_invisible_values",
	"completed_before_html", "completed_html", "completed_html_on_condition",
	"complete_text", "cookie_name", "description", "edit_text",
	"first_page_is_started", "focus_first_question_automatic",
	"focus_on_first_error", "go_next_page_automatic", "loading_html", "locale",
	"logo", "logo_fit", "logo_height", "logo_position", "logo_width",
	"max_others_length", "max_text_length", "max_time_to_finish",
	"max_time_to_finish_page", "mode", "navigate_to_url",
	"navigate_to_url_on_condition", "page_next_text", "page_prev_text",
	"preview_text", "progress_bar_type", "questions_on_page_mode",
	"questions_order", "question_description_location",
	"question_error_location", "question_start_index",
	"question_title_location", "question_title_pattern",
	"question_title_template", "required_text", "send_result_on_page_next",
	"show_completed_page", "show_navigation_buttons", "show_page_numbers",
	"show_page_titles", "show_prev_button", "show_preview_before_complete",
	"show_progress_bar", "show_question_numbers", "show_timer_panel",
	"show_timer_panel_mode", "show_title", "start_survey_text",
	"store_others_as_comment", "survey_id", "survey_post_id",
	"survey_show_data_saving", "text_update_mode", "triggers",
)

var pageKeys = keySet(
	"name", "title", "max_time_to_finish", "navigation_buttons_visibility",
	"question_title_location", "questions_order",
)

// elementKeys applies to questions and panels at every nesting depth.
var elementKeys = keySet(
	"accepted_types", "add_row_location", "add_row_text", "allow_add_panel",
	"allow_add_rows", "allow_remove_panel", "allow_remove_rows", "allow_clear",
	"allow_images_preview", "allow_multiple", "all_rows_required", "auto_close",
	"auto_unmask", "bg_emotion", "cells", "cell_type", "choices",
	"choices_by_url", "choices_enable_if", "choices_max", "choices_min",
	"choices_order", "choices_step", "choices_visible_if", "clear_button",
	"columns", "columns_visible_if", "column_col_count", "column_layout",
	"column_min_width", "cols", "col_count", "config", "confirm_delete",
	"confirm_delete_text", "content_mode", "correct_answer", "currency",
	"date_format", "days_of_week_highlighted", "default_row_value",
	"default_value", "default_value_from_last_panel",
	"default_value_from_last_row", "description", "description_location",
	"direction", "disable_touch_keyboard", "display_style", "elements",
	"emotion_color", "emotion_size", "emotions", "emotions_count", "empty_text",
	"enable_if", "end_date", "expression", "expression_format", "has_none",
	"has_other", "has_select_all", "height", "hide_if_choices_empty",
	"hide_number", "horizontal_scroll", "html", "image_fit", "image_height",
	"image_width", "indent", "inner_indent", "input_format", "input_mask",
	"input_type", "items", "item_size", "key_duplication_error", "key_name",
	"kind", "label_false", "label_true", "maximum_fraction_digits",
	"max_answers_count", "max_date", "max_length", "max_panel_count",
	"max_rate_description", "max_row_count", "max_size", "max_value",
	"max_width", "minimum_fraction_digits", "min_date", "min_panel_count",
	"min_rate_description", "min_row_count", "min_width", "min_value",
	"multi_select", "name", "need_confirm_remove_file", "none_text",
	"orientation", "options_caption", "other_text", "other_error_text",
	"other_place_holder", "panel_add_text", "panel_count", "panel_next_text",
	"panel_prev_text", "panel_remove_text", "panels_state", "pips_mode",
	"pips_density", "pips_text", "pips_values", "place_holder", "prefix",
	"question_start_index", "question_title_location", "range_max", "range_min",
	"rate_max", "rate_min", "rate_step", "rating_theme", "remove_row_text",
	"render_as", "render_mode", "required", "required_error_text",
	"required_if", "rows", "rows_order", "rows_visible_if", "row_count",
	"row_title_width", "select_all_text", "select2_config", "show_clear_button",
	"show_header", "show_label", "show_number", "show_options_caption",
	"show_preview", "show_question_numbers", "show_range_in_progress",
	"show_title", "show_values", "size", "start_date", "start_with_new_line",
	"state", "step", "store_data_as_text", "template_elements",
	"template_description", "template_title", "template_title_location",
	"text_update_mode", "title", "title_location", "today_highlight",
	"tooltips", "total_text", "use_display_values_in_title", "use_grouping",
	"validators", "value_false", "value_name", "value_true", "visible",
	"visible_if", "wait_for_upload", "week_start", "width",
)

func keySet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out
}
