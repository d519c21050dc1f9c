package render

// ScriptData is the input of the initialisation script.
type ScriptData struct {
	// JSON is the wire form of the survey, embedded verbatim.
	JSON string
	// Data pre-populates answers, for edit forms.
	Data map[string]any
	// HTMLID is the id of the element the survey mounts into.
	HTMLID string
	// Action is the URL answers are posted to. Empty keeps the survey
	// client side only.
	Action string
	// Theme is the SurveyJS theme applied by the script.
	Theme string
}

// PageData is the input of a standalone HTML page.
type PageData struct {
	Title  string
	HTMLID string
	Script string
	JS     []string
	CSS    []string
}
