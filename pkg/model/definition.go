package model

// WrapperKind distinguishes page wrappers from panel wrappers.
type WrapperKind int

const (
	WrapperPanel WrapperKind = iota
	WrapperPage
)

// Wrapper embeds a nested definition as a page or panel of its parent.
type Wrapper struct {
	Kind    WrapperKind
	Form    *Definition
	Name    string
	Dynamic bool
	Params  map[string]any
}

// EffectiveName returns the explicit wrapper name, falling back to the nested
// definition name.
func (w *Wrapper) EffectiveName() string {
	if w == nil {
		return ""
	}
	if w.Name != "" {
		return w.Name
	}
	if w.Form != nil {
		return w.Form.Name
	}
	return ""
}

// WrapperOption configures a page or panel wrapper.
type WrapperOption func(*Wrapper)

// WrapperName overrides the name inherited from the nested definition.
func WrapperName(name string) WrapperOption {
	return func(w *Wrapper) { w.Name = name }
}

// WrapperParam sets a page or panel attribute by snake_case name.
func WrapperParam(name string, value any) WrapperOption {
	return func(w *Wrapper) {
		if w.Params == nil {
			w.Params = make(map[string]any)
		}
		w.Params[name] = value
	}
}

// WrapperParams sets several page or panel attributes.
func WrapperParams(params map[string]any) WrapperOption {
	return func(w *Wrapper) {
		for name, value := range params {
			WrapperParam(name, value)(w)
		}
	}
}

// Member is a named slot of a definition. Exactly one of Question, Wrapper or
// Value is meaningful; plain values are ignored by the assembler.
type Member struct {
	Slot     string
	Question *Question
	Wrapper  *Wrapper
	Value    any
}

// Definition is a declared form: a name, form level defaults and ordered
// members.
type Definition struct {
	Name    string
	Params  map[string]any
	members []Member
}

// DefinitionOption configures a definition.
type DefinitionOption func(*Definition)

// WithFormParam sets a survey level attribute by snake_case name.
func WithFormParam(name string, value any) DefinitionOption {
	return func(d *Definition) {
		if d.Params == nil {
			d.Params = make(map[string]any)
		}
		d.Params[name] = value
	}
}

// WithFormParams sets several survey level attributes.
func WithFormParams(params map[string]any) DefinitionOption {
	return func(d *Definition) {
		for name, value := range params {
			WithFormParam(name, value)(d)
		}
	}
}

// NewDefinition creates an empty definition.
func NewDefinition(name string, opts ...DefinitionOption) *Definition {
	d := &Definition{Name: name}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Add appends a question member.
func (d *Definition) Add(slot string, q *Question) *Definition {
	d.members = append(d.members, Member{Slot: slot, Question: q})
	return d
}

// AddPage appends form as a page. Pages nested below the top level render as
// panels.
func (d *Definition) AddPage(slot string, form *Definition, opts ...WrapperOption) *Definition {
	return d.addWrapper(slot, &Wrapper{Kind: WrapperPage, Form: form}, opts)
}

// AddPanel appends form as a static panel.
func (d *Definition) AddPanel(slot string, form *Definition, opts ...WrapperOption) *Definition {
	return d.addWrapper(slot, &Wrapper{Kind: WrapperPanel, Form: form}, opts)
}

// AddDynamicPanel appends form as a dynamic panel whose children are templates
// repeated by the client.
func (d *Definition) AddDynamicPanel(slot string, form *Definition, opts ...WrapperOption) *Definition {
	return d.addWrapper(slot, &Wrapper{Kind: WrapperPanel, Form: form, Dynamic: true}, opts)
}

// AddValue appends a plain value member.
func (d *Definition) AddValue(slot string, value any) *Definition {
	d.members = append(d.members, Member{Slot: slot, Value: value})
	return d
}

func (d *Definition) addWrapper(slot string, w *Wrapper, opts []WrapperOption) *Definition {
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	d.members = append(d.members, Member{Slot: slot, Wrapper: w})
	return d
}

// Members returns the members in declaration order.
func (d *Definition) Members() []Member {
	if d == nil {
		return nil
	}
	return append([]Member(nil), d.members...)
}

// Len reports the number of members.
func (d *Definition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.members)
}
