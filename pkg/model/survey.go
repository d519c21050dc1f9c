package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultPageName names the page collecting top level questions.
const DefaultPageName = "default"

// Survey is the root of an assembled schema tree.
type Survey struct {
	Params map[string]any
	Pages  []*Page
}

// Attributes resolves the survey level attributes.
func (s *Survey) Attributes() []Attribute {
	return Attributes(SurveySpec, nil, s.Params)
}

// Page returns the first page with the given name.
func (s *Survey) Page(name string) (*Page, bool) {
	for _, page := range s.Pages {
		if page.Name == name {
			return page, true
		}
	}
	return nil, false
}

// Page groups elements shown together.
type Page struct {
	Name     string
	Params   map[string]any
	Elements []*Element
}

// Attributes resolves the page attributes.
func (p *Page) Attributes() []Attribute {
	return Attributes(PageSpec, map[string]any{"name": p.Name}, p.Params)
}

// Element is a node of the schema tree: a question or a panel holding further
// elements. Dynamic panel children are templates.
type Element struct {
	Kind     Kind
	Name     string
	Question *Question
	Params   map[string]any
	Elements []*Element
}

// IsContainer reports whether the element is a panel.
func (e *Element) IsContainer() bool {
	return e.Kind.IsContainer()
}

// Attributes resolves the element attributes.
func (e *Element) Attributes() []Attribute {
	if !e.IsContainer() && e.Question != nil {
		return e.Question.Attributes()
	}
	fixed := map[string]any{
		"kind": string(e.Kind),
		"name": e.Name,
	}
	return Attributes(MustSpec(e.Kind), fixed, e.Params)
}

// Index maps question names to questions in first insertion order. Setting an
// existing name replaces the question but keeps its position.
type Index struct {
	entries *orderedmap.OrderedMap[string, *Question]
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: orderedmap.New[string, *Question]()}
}

func (i *Index) Set(name string, q *Question) {
	i.entries.Set(name, q)
}

func (i *Index) Get(name string) (*Question, bool) {
	if i == nil || i.entries == nil {
		return nil, false
	}
	return i.entries.Get(name)
}

func (i *Index) Len() int {
	if i == nil || i.entries == nil {
		return 0
	}
	return i.entries.Len()
}

// Names lists the indexed names in order.
func (i *Index) Names() []string {
	if i == nil || i.entries == nil {
		return nil
	}
	names := make([]string, 0, i.entries.Len())
	for pair := i.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Each visits the entries in order until fn returns false.
func (i *Index) Each(fn func(name string, q *Question) bool) {
	if i == nil || i.entries == nil {
		return
	}
	for pair := i.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}
