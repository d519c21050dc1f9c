package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/validation"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds a handler serving f with default options plus any overrides.
func New(f *form.Form, fns ...OptionFn) http.Handler {
	return WithOptions(f, NewOptions(fns...))
}

// WithOptions builds a handler from a pre-constructed Options value.
func WithOptions(f *form.Form, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if f == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, statusOf(err, http.StatusForbidden), err)
				return
			}
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			servePage(w, r, f, opts)
		case http.MethodPost:
			serveSubmit(w, r, f, opts)
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func servePage(w http.ResponseWriter, r *http.Request, f *form.Form, opts Options) {
	page, err := f.RenderHTML(r.Context(), opts.Title, nil)
	if err != nil {
		opts.Logger.Error("handler.render.failed",
			slog.String("form", f.Name()),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, page)
}

func serveSubmit(w http.ResponseWriter, r *http.Request, f *form.Form, opts Options) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var values map[string]any
	if err := json.Unmarshal(body, &values); err != nil || values == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("answers must be a JSON object"))
		return
	}

	result, err := f.Validate(values, false)
	if err != nil {
		opts.Logger.Error("handler.validate.failed",
			slog.String("form", f.Name()),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !result.Passed {
		opts.Logger.Info("handler.submit.invalid",
			slog.String("form", f.Name()),
			slog.Int("issues", len(result.Issues)),
		)
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	if opts.OnSubmit != nil {
		if err := opts.OnSubmit(r.Context(), values); err != nil {
			opts.Logger.Error("handler.submit.failed",
				slog.String("form", f.Name()),
				slog.String("error", err.Error()),
			)
			writeError(w, statusOf(err, http.StatusInternalServerError), err)
			return
		}
	}
	opts.Logger.Debug("handler.submit.accepted", slog.String("form", f.Name()))
	writeJSON(w, http.StatusOK, validation.Result{Passed: true})
}

func statusOf(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return fallback
}

func writeError(w http.ResponseWriter, code int, err error) {
	message := http.StatusText(code)
	if code < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
