package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-questions/pkg/config"
	"github.com/goliatone/go-questions/pkg/validation"
)

const contactJSON = `{
  "title": "Contact",
  "pages": [{"name": "default", "questions": [
    {"type": "text", "name": "email", "isRequired": true,
     "validators": [{"type": "email", "message": "Not an email"}]},
    {"type": "comment", "name": "message"}
  ]}]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(config.Default())
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestResourcesCommand(t *testing.T) {
	out, err := execute(t, "resources", "jquery", "defaultV2")
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	for _, want := range []string{
		"Required Javascript resources:",
		"https://unpkg.com/survey-jquery/survey.jquery.min.js",
		"Required CSS resources:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "select2") {
		t.Fatalf("widget assets listed without --include-widgets:\n%s", out)
	}

	out, err = execute(t, "resources", "vue", "modern", "--include-widgets", "--resource-url", "/static")
	if err != nil {
		t.Fatalf("resources with widgets: %v", err)
	}
	for _, want := range []string{"/static/survey-vue/survey.vue.min.js", "/static/select2.min.js", "/static/select2.min.css"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestResourcesUnknownPlatform(t *testing.T) {
	if _, err := execute(t, "resources", "svelte", "defaultV2"); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "contact.json", contactJSON)

	out, err := execute(t, "render", doc, "--platform", "knockout", "--html-id", "contact_form")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<title>Contact</title>", `id="contact_form"`, "survey.knockout.min.js"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in page:\n%s", want, out)
		}
	}

	target := filepath.Join(dir, "contact.js")
	if _, err := execute(t, "render", doc, "--js", "-o", target); err != nil {
		t.Fatalf("render js: %v", err)
	}
	script, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(script), "<html") || !strings.Contains(string(script), `"email"`) {
		t.Fatalf("unexpected script:\n%s", script)
	}
}

func TestExportCommand(t *testing.T) {
	doc := writeFile(t, t.TempDir(), "contact.json", contactJSON)

	out, err := execute(t, "export", doc, "--omit-defaults")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	if decoded["title"] != "Contact" {
		t.Fatalf("unexpected export %v", decoded)
	}
	if !strings.Contains(out, `"isRequired": true`) {
		t.Fatalf("expected isRequired in export:\n%s", out)
	}

	out, err = execute(t, "export", doc, "--yaml", "--omit-defaults")
	if err != nil {
		t.Fatalf("export yaml: %v", err)
	}
	if !strings.Contains(out, "title: Contact") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "contact.json", contactJSON)
	good := writeFile(t, dir, "good.json", `{"email": "ada@example.com"}`)
	bad := writeFile(t, dir, "bad.json", `{"email": "nope"}`)

	out, err := execute(t, "validate", doc, good)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	var result validation.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected answers to pass: %s", out)
	}

	out, err = execute(t, "validate", doc, bad)
	if !errors.Is(err, errInvalidAnswers) {
		t.Fatalf("expected errInvalidAnswers, got %v", err)
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Passed || len(result.Issues) != 1 || result.Issues[0].Message != "Not an email" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCommandArgs(t *testing.T) {
	for _, args := range [][]string{
		{"render"},
		{"validate", "only-one.json"},
		{"export", "missing.json"},
		{"render", "form.toml"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
