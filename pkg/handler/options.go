package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// DefaultMaxBodyBytes bounds the size of posted answers.
const DefaultMaxBodyBytes int64 = 1 << 20

// GuardFunc authorises a request before it is served.
type GuardFunc func(r *http.Request) error

// SubmitFunc receives answers that passed validation.
type SubmitFunc func(ctx context.Context, values map[string]any) error

type Options struct {
	RoutePath    string
	Title        string
	MaxBodyBytes int64
	Guard        GuardFunc
	OnSubmit     SubmitFunc
	Logger       *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/",
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

// WithRoutePath sets the path the handler is mounted on by RegisterRoutes.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

// WithTitle sets the page title. Empty falls back to the form title.
func WithTitle(title string) OptionFn {
	return func(o *Options) {
		o.Title = title
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithOnSubmit registers the callback run for valid answers. Returning an
// HTTPError selects the response status.
func WithOnSubmit(fn SubmitFunc) OptionFn {
	return func(o *Options) {
		o.OnSubmit = fn
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
