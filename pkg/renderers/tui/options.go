package tui

import (
	"io"
	"log/slog"
)

// DefaultAttempts bounds how often a rejected answer is asked again.
const DefaultAttempts = 3

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithValues seeds the answers; seeded answers become prompt defaults.
func WithValues(values map[string]any) Option {
	return func(f *Filler) {
		for name, value := range values {
			f.initial[name] = value
		}
	}
}

// WithAttempts sets how many times a question is asked before Fill gives up.
// Zero or less asks until the answer passes.
func WithAttempts(n int) Option {
	return func(f *Filler) {
		f.attempts = n
	}
}

// WithOutput sets where the default driver prints messages.
func WithOutput(w io.Writer) Option {
	return func(f *Filler) {
		if w != nil {
			f.output = w
		}
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}
