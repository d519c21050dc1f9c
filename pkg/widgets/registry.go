package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers exposed by the registry. Widget names match the
// question kind they decorate, except select2 which is a dropdown rendered
// through the select2 widget.
const (
	WidgetText                = "text"
	WidgetTagBox              = "tagbox"
	WidgetSelect2             = "select2"
	WidgetDatePicker          = "datepicker"
	WidgetBootstrapDatePicker = "bootstrapdatepicker"
	WidgetBarRating           = "barrating"
	WidgetSortableList        = "sortablelist"
	WidgetNoUISlider          = "nouislider"
	WidgetEditor              = "editor"
	WidgetBootstrapSlider     = "bootstrapslider"
	WidgetEmotionsRatings     = "emotionsratings"
	WidgetMicrophone          = "microphone"
)

// Assets lists the scripts and stylesheets a widget needs on the host page.
type Assets struct {
	JS  []string
	CSS []string
}

func (a Assets) clone() Assets {
	return Assets{
		JS:  append([]string(nil), a.JS...),
		CSS: append([]string(nil), a.CSS...),
	}
}

// Registry maps widget names to their assets. An explicit render hint is
// honoured before the question kind during resolution.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Assets
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry holding the built-in widgets.
func Default() *Registry {
	return defaultRegistry
}

// Register stores assets for the named widget. The latest registration wins.
func (r *Registry) Register(name string, assets Assets) {
	if r == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Assets)
	}
	r.entries[trimmed] = assets.clone()
}

// Resolve returns the widget name for a question. A registered render hint
// wins over the kind; unknown names never resolve.
func (r *Registry) Resolve(kind, renderAs string) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if hint := strings.TrimSpace(renderAs); hint != "" {
		if _, ok := r.entries[hint]; ok {
			return hint, true
		}
	}
	if _, ok := r.entries[kind]; ok {
		return kind, true
	}
	return "", false
}

// Lookup returns a copy of the assets registered for name.
func (r *Registry) Lookup(name string) (Assets, bool) {
	if r == nil {
		return Assets{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	assets, ok := r.entries[name]
	if !ok {
		return Assets{}, false
	}
	return assets.clone(), true
}

// AssetsFor resolves the widget for a question and returns its assets.
func (r *Registry) AssetsFor(kind, renderAs string) Assets {
	name, ok := r.Resolve(kind, renderAs)
	if !ok {
		return Assets{}
	}
	assets, _ := r.Lookup(name)
	return assets
}

// Names lists registered widgets in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

const jquery = "https://unpkg.com/jquery@3.5.1/dist/jquery.js"

func (r *Registry) registerBuiltins() {
	select2 := Assets{
		JS: []string{
			jquery,
			"https://cdnjs.cloudflare.com/ajax/libs/select2/4.0.4/js/select2.min.js",
		},
		CSS: []string{
			"https://cdnjs.cloudflare.com/ajax/libs/select2/4.0.4/css/select2.min.css",
		},
	}

	r.Register(WidgetText, Assets{JS: []string{
		jquery,
		"https://unpkg.com/inputmask@5.0.3/dist/inputmask.js",
	}})
	r.Register(WidgetTagBox, select2)
	r.Register(WidgetSelect2, select2)
	r.Register(WidgetDatePicker, Assets{
		JS: []string{
			jquery,
			"https://code.jquery.com/ui/1.11.4/jquery-ui.min.js",
		},
		CSS: []string{
			"https://ajax.googleapis.com/ajax/libs/jqueryui/1.8.18/themes/smoothness/jquery-ui.css",
		},
	})
	r.Register(WidgetBootstrapDatePicker, Assets{
		JS: []string{
			jquery,
			"https://unpkg.com/moment@2.24.0/moment.js",
			"https://cdnjs.cloudflare.com/ajax/libs/bootstrap-datepicker/1.9.0/js/bootstrap-datepicker.js",
		},
		CSS: []string{
			"https://unpkg.com/bootstrap@3.3.7/dist/css/bootstrap.min.css",
			"https://cdnjs.cloudflare.com/ajax/libs/bootstrap-datepicker/1.9.0/css/bootstrap-datepicker.min.css",
		},
	})

	barThemes := []string{
		"bars-1to10", "bars-movie", "bars-pill", "bars-reversed",
		"bars-horizontal", "fontawesome-stars", "css-stars", "fontawesome-stars-o",
	}
	barCSS := []string{"https://maxcdn.bootstrapcdn.com/font-awesome/latest/css/font-awesome.min.css"}
	for _, theme := range barThemes {
		barCSS = append(barCSS, "https://unpkg.com/jquery-bar-rating@1.2.2/dist/themes/"+theme+".css")
	}
	r.Register(WidgetBarRating, Assets{
		JS:  []string{jquery, "https://unpkg.com/jquery-bar-rating"},
		CSS: barCSS,
	})

	r.Register(WidgetSortableList, Assets{JS: []string{
		jquery,
		"https://unpkg.com/sortablejs@1.7.0/Sortable.js",
	}})
	r.Register(WidgetNoUISlider, Assets{
		JS: []string{
			jquery,
			"https://unpkg.com/nouislider@9.2.0/distribute/nouislider.js",
			"https://unpkg.com/wnumb@1.1.0",
		},
		CSS: []string{"https://unpkg.com/nouislider@9.2.0/distribute/nouislider.min.css"},
	})
	r.Register(WidgetEditor, Assets{JS: []string{
		jquery,
		"https://cdn.ckeditor.com/4.14.1/standard/ckeditor.js",
	}})
	r.Register(WidgetBootstrapSlider, Assets{
		JS: []string{
			jquery,
			"https://cdnjs.cloudflare.com/ajax/libs/bootstrap-slider/10.0.0/bootstrap-slider.js",
		},
		CSS: []string{
			"https://unpkg.com/bootstrap@3.3.7/dist/css/bootstrap.min.css",
			"https://cdnjs.cloudflare.com/ajax/libs/bootstrap-slider/10.0.0/css/bootstrap-slider.css",
		},
	})
	r.Register(WidgetEmotionsRatings, Assets{JS: []string{
		jquery,
		"https://unpkg.com/emotion-ratings@2.0.1/dist/emotion-ratings.js",
	}})
	r.Register(WidgetMicrophone, Assets{JS: []string{
		"https://www.WebRTC-Experiment.com/RecordRTC.js",
	}})
}
