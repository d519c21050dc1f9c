// Package validation checks submitted answers against the questions of an
// assembled form. It mirrors the checks the SurveyJS client performs so that
// data posted from outside the rendered form is held to the same rules.
package validation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-questions/pkg/model"
)

// RequiredMessage is reported for a required question without an answer.
const RequiredMessage = "An answer is required"

// DefaultErrorsKey is the reserved values key used by forms to expose issues.
const DefaultErrorsKey = "__errors__"

// ErrUnknownValidator reports a validator the engine has no predicate for.
var ErrUnknownValidator = errors.New("validation: unrecognized validator")

// ErrFailed is matched by every *Error.
var ErrFailed = errors.New("validation: failed")

// Issue is a single failed check.
type Issue struct {
	Question string `json:"question"`
	Message  string `json:"message"`
}

// Result is the outcome of a validation run.
type Result struct {
	Passed bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Error carries the issues of a failed run.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return ErrFailed.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Question, issue.Message))
	}
	return ErrFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool { return target == ErrFailed }

// Err returns nil when the run passed, else an *Error holding the issues.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return &Error{Issues: append([]Issue(nil), r.Issues...)}
}

// Option configures a validation run.
type Option func(*options)

type options struct {
	errorsKey string
	logger    *slog.Logger
}

// WithErrorsKey stores the issue list into the values map under key. The
// list is written even when empty.
func WithErrorsKey(key string) Option {
	return func(o *options) { o.errorsKey = key }
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Validate runs every check for every indexed question. Checks never stop at
// the first failure so the issue list is complete. An unanswered optional
// question skips its text, numeric, email and regex validators; expression
// validators always run. An error is returned only for validators the engine
// does not know.
func Validate(index *model.Index, values map[string]any, opts ...Option) (Result, error) {
	cfg := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := Result{Passed: true}
	if index == nil {
		return finish(result, values, cfg), nil
	}

	var failure error
	index.Each(func(name string, q *model.Question) bool {
		value := values[name]
		if value == nil && q.Required {
			result.add(name, RequiredMessage)
		}
		for _, validator := range q.Validators {
			if value == nil && !q.Required && valueOnly(validator) {
				continue
			}
			ok, err := check(validator, value, values)
			if err != nil {
				failure = fmt.Errorf("question %q: %w", name, err)
				return false
			}
			if !ok {
				result.add(name, validator.ErrorMessage())
			}
		}
		return true
	})
	if failure != nil {
		return Result{}, failure
	}

	cfg.logger.Debug("validation.complete",
		slog.Bool("passed", result.Passed),
		slog.Int("questions", index.Len()),
		slog.Int("issues", len(result.Issues)),
	)
	return finish(result, values, cfg), nil
}

func (r *Result) add(question, message string) {
	r.Passed = false
	r.Issues = append(r.Issues, Issue{Question: question, Message: message})
}

func finish(result Result, values map[string]any, cfg options) Result {
	if cfg.errorsKey != "" && values != nil {
		issues := append([]Issue{}, result.Issues...)
		values[cfg.errorsKey] = issues
	}
	return result
}
