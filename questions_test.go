package questions

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questions/pkg/form"
)

const contactJSON = `{
  "title": "Contact",
  "pages": [{"name": "default", "questions": [
    {"type": "text", "name": "email", "isRequired": true},
    {"type": "comment", "name": "message"}
  ]}]
}`

const contactYAML = `title: Contact
pages:
  - name: default
    questions:
      - type: text
        name: email
        isRequired: true
      - type: comment
        name: message
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "contact.json")
	yamlPath := filepath.Join(dir, "contact.yaml")
	if err := os.WriteFile(jsonPath, []byte(contactJSON), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte(contactYAML), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		f, err := Load(path, form.WithPlatform("knockout"))
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if f.Name() != "contact" || f.Platform() != "knockout" {
			t.Fatalf("unexpected form %s", f)
		}
		result, err := f.Assemble()
		if err != nil {
			t.Fatalf("assemble: %v", err)
		}
		if diff := cmp.Diff([]string{"email", "message"}, result.Index.Names()); diff != "" {
			t.Fatalf("index mismatch (-want +got):\n%s", diff)
		}
		q, _ := result.Index.Get("email")
		if !q.Required {
			t.Fatalf("email should be required")
		}
		if f.Params()["title"] != "Contact" {
			t.Fatalf("expected title param, got %v", f.Params())
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
	path := filepath.Join(t.TempDir(), "form.toml")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "survey_js.jquery.tmpl"); err != nil {
		t.Fatalf("expected jquery script template: %v", err)
	}
}
