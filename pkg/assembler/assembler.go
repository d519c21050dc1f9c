// Package assembler walks a form definition and produces the SurveyJS schema
// tree, the flat question index and the widget assets the tree needs. Every
// call builds a fresh result; definitions and their questions are never
// mutated, so one definition can be assembled concurrently.
package assembler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/resources"
)

var (
	// ErrNilDefinition is returned when no definition is supplied.
	ErrNilDefinition = errors.New("assembler: definition is required")
	// ErrUnknownKind reports a question whose kind has no declared spec.
	ErrUnknownKind = errors.New("assembler: unrecognized field kind")
)

// Result is an assembled form. It is safe to share once returned.
type Result struct {
	Survey   *model.Survey
	Index    *model.Index
	ExtraJS  []string
	ExtraCSS []string
}

// Option configures an assembly pass.
type Option func(*config)

type config struct {
	base        string
	requiredJS  []string
	requiredCSS []string
	params      map[string]any
	logger      *slog.Logger
}

// WithResourceURL sets the resource base. Anything other than the CDN rewrites
// widget asset URLs to {base}/{filename}.
func WithResourceURL(base string) Option {
	return func(c *config) { c.base = base }
}

// WithRequiredAssets lists platform and theme assets already on the page;
// widget assets matching them are dropped.
func WithRequiredAssets(js, css []string) Option {
	return func(c *config) {
		c.requiredJS = append([]string(nil), js...)
		c.requiredCSS = append([]string(nil), css...)
	}
}

// WithSurveyParams overlays survey level attributes on the definition params.
func WithSurveyParams(params map[string]any) Option {
	return func(c *config) {
		if len(params) == 0 {
			return
		}
		if c.params == nil {
			c.params = make(map[string]any, len(params))
		}
		for name, value := range params {
			c.params[name] = value
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Assemble builds the schema tree for def.
func Assemble(def *model.Definition, opts ...Option) (*Result, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}
	cfg := config{
		base:   resources.CDN,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	survey := &model.Survey{
		Params: mergeParams(def.Params, cfg.params),
		Pages:  []*model.Page{{Name: model.DefaultPageName}},
	}
	w := &walker{
		cfg:    cfg,
		survey: survey,
		index:  model.NewIndex(),
		js:     newAssetSet(cfg.requiredJS),
		css:    newAssetSet(cfg.requiredCSS),
	}
	if err := w.walk(def, survey.Pages[0], nil, true); err != nil {
		return nil, err
	}

	if w.js.len() > 0 {
		w.js.add(resources.WidgetsBootstrap(cfg.base))
	}

	cfg.logger.Debug("assembly.complete",
		slog.String("form", def.Name),
		slog.Int("pages", len(survey.Pages)),
		slog.Int("questions", w.index.Len()),
		slog.Int("extra_js", w.js.len()),
		slog.Int("extra_css", w.css.len()),
	)

	return &Result{
		Survey:   survey,
		Index:    w.index,
		ExtraJS:  w.js.list(),
		ExtraCSS: w.css.list(),
	}, nil
}

type walker struct {
	cfg    config
	survey *model.Survey
	index  *model.Index
	js     *assetSet
	css    *assetSet
}

// walk appends the members of def to container when set, else to page. Only
// the top level promotes page wrappers to pages.
func (w *walker) walk(def *model.Definition, page *model.Page, container *model.Element, topLevel bool) error {
	for _, member := range def.Members() {
		switch {
		case member.Question != nil:
			if err := w.addQuestion(member, page, container); err != nil {
				return err
			}
		case member.Wrapper != nil:
			if err := w.addWrapper(member, page, container, topLevel); err != nil {
				return err
			}
		default:
			w.cfg.logger.Debug("assembly.member.skip", slog.String("slot", member.Slot))
		}
	}
	return nil
}

func (w *walker) addQuestion(member model.Member, page *model.Page, container *model.Element) error {
	src := member.Question
	if _, ok := model.Spec(src.Kind); !ok || src.Kind.IsContainer() {
		return fmt.Errorf("%w %q for member %q", ErrUnknownKind, src.Kind, member.Slot)
	}
	q := src.Clone()
	if q.Name == "" {
		q.Name = member.Slot
	}
	if _, exists := w.index.Get(q.Name); exists {
		w.cfg.logger.Debug("assembly.name.duplicate", slog.String("name", q.Name))
	}
	w.index.Set(q.Name, q)

	for _, url := range q.ExtraJS {
		w.js.add(resources.Rewrite(url, w.cfg.base))
	}
	for _, url := range q.ExtraCSS {
		w.css.add(resources.Rewrite(url, w.cfg.base))
	}

	appendElement(page, container, &model.Element{Kind: q.Kind, Name: q.Name, Question: q})
	return nil
}

func (w *walker) addWrapper(member model.Member, page *model.Page, container *model.Element, topLevel bool) error {
	wrapper := member.Wrapper
	name := wrapper.EffectiveName()
	if name == "" {
		name = member.Slot
	}

	if topLevel && wrapper.Kind == model.WrapperPage {
		next := &model.Page{Name: name, Params: copyParams(wrapper.Params)}
		w.survey.Pages = append(w.survey.Pages, next)
		if wrapper.Form == nil {
			return nil
		}
		return w.walk(wrapper.Form, next, nil, false)
	}

	kind := model.KindPanel
	if wrapper.Dynamic {
		kind = model.KindPanelDynamic
	}
	panel := &model.Element{Kind: kind, Name: name, Params: copyParams(wrapper.Params)}
	appendElement(page, container, panel)
	if wrapper.Form == nil {
		return nil
	}
	return w.walk(wrapper.Form, page, panel, false)
}

func appendElement(page *model.Page, container *model.Element, element *model.Element) {
	if container != nil {
		container.Elements = append(container.Elements, element)
		return
	}
	page.Elements = append(page.Elements, element)
}

func copyParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for key, value := range params {
		out[key] = value
	}
	return out
}

func mergeParams(base, overlay map[string]any) map[string]any {
	out := copyParams(base)
	if len(overlay) == 0 {
		return out
	}
	if out == nil {
		out = make(map[string]any, len(overlay))
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// assetSet keeps URLs unique in first seen order, excluding URLs the page
// already loads.
type assetSet struct {
	seen  map[string]struct{}
	items []string
}

func newAssetSet(required []string) *assetSet {
	set := &assetSet{seen: make(map[string]struct{}, len(required))}
	for _, url := range required {
		set.seen[url] = struct{}{}
	}
	return set
}

func (s *assetSet) add(url string) {
	if url == "" {
		return
	}
	if _, ok := s.seen[url]; ok {
		return
	}
	s.seen[url] = struct{}{}
	s.items = append(s.items, url)
}

func (s *assetSet) len() int { return len(s.items) }

func (s *assetSet) list() []string {
	return append([]string(nil), s.items...)
}
