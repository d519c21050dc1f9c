// Package tui fills a form from the terminal. Every indexed question is asked
// in order with a prompt suited to its kind, and each answer is checked by the
// validation engine before moving on.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/model"
	"github.com/goliatone/go-questions/pkg/validation"
)

// SkipOption is appended to single choice prompts of optional questions.
const SkipOption = "(skip)"

// Filler collects answers for a form through a PromptDriver.
type Filler struct {
	driver   PromptDriver
	initial  map[string]any
	attempts int
	output   io.Writer
	logger   *slog.Logger
}

// New constructs a filler backed by survey prompts unless a driver is given.
func New(options ...Option) *Filler {
	f := &Filler{
		initial:  map[string]any{},
		attempts: DefaultAttempts,
		output:   os.Stdout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = newSurveyDriver(f.output)
	}
	return f
}

// Fill asks every question of target and returns the accepted answers.
// Questions left unanswered are absent from the result.
func (f *Filler) Fill(ctx context.Context, target *form.Form) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if target == nil {
		return nil, errors.New("tui: form is required")
	}
	result, err := target.Assemble()
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(f.initial))
	for name, value := range f.initial {
		values[name] = value
	}

	var failure error
	result.Index.Each(func(name string, q *model.Question) bool {
		if err := ctx.Err(); err != nil {
			failure = err
			return false
		}
		if err := f.ask(ctx, name, q, values); err != nil {
			failure = err
			return false
		}
		return true
	})
	if failure != nil {
		return nil, failure
	}

	outcome, err := validation.Validate(result.Index, values, validation.WithLogger(f.logger))
	if err != nil {
		return nil, err
	}
	if err := outcome.Err(); err != nil {
		return nil, err
	}
	f.logger.Debug("tui.fill.complete",
		slog.String("form", target.Name()),
		slog.Int("answers", len(values)),
	)
	return values, nil
}

func (f *Filler) ask(ctx context.Context, name string, q *model.Question, values map[string]any) error {
	single := model.NewIndex()
	single.Set(name, q)

	for attempt := 1; ; attempt++ {
		answer, asked, err := f.prompt(ctx, name, q, values[name])
		if err != nil {
			return err
		}
		if !asked {
			return nil
		}

		candidate := make(map[string]any, len(values)+1)
		for key, value := range values {
			candidate[key] = value
		}
		if answer == nil {
			delete(candidate, name)
		} else {
			candidate[name] = answer
		}

		outcome, err := validation.Validate(single, candidate)
		if err != nil {
			return err
		}
		if outcome.Passed {
			if answer == nil {
				delete(values, name)
			} else {
				values[name] = answer
			}
			return nil
		}

		for _, issue := range outcome.Issues {
			if err := f.driver.Notice(ctx, fmt.Sprintf("%s: %s", label(name, q), issue.Message)); err != nil {
				return err
			}
		}
		f.logger.Debug("tui.question.retry",
			slog.String("question", name),
			slog.Int("attempt", attempt),
		)
		if f.attempts > 0 && attempt >= f.attempts {
			return fmt.Errorf("%w %q: %v", ErrInvalidAnswer, name, outcome.Err())
		}
	}
}

// prompt asks one question. asked is false for kinds that take no terminal
// input; a nil answer means the question was left empty.
func (f *Filler) prompt(ctx context.Context, name string, q *model.Question, current any) (any, bool, error) {
	base := Prompt{
		Name:    name,
		Message: label(name, q),
		Help:    stringParam(q, "description"),
		Default: defaultText(q, current),
	}
	if base.Help == "" {
		base.Help = stringParam(q, "place_holder")
	}

	switch q.Kind {
	case model.KindHTML, model.KindImage, model.KindExpression:
		return nil, false, nil
	case model.KindSignaturePad, model.KindFile, model.KindMatrix, model.KindMatrixDropdown,
		model.KindMatrixDynamic, model.KindMultipleText, model.KindMicrophone:
		return nil, false, f.driver.Notice(ctx, fmt.Sprintf("%s: not available in the terminal, skipped", base.Message))

	case model.KindBoolean:
		def, _ := current.(bool)
		answer, err := f.driver.Confirm(ctx, base, def)
		if err != nil {
			return nil, true, err
		}
		return answer, true, nil

	case model.KindComment, model.KindEditor:
		return f.text(ctx, base, TextMultiline)

	case model.KindRadioGroup, model.KindDropdown, model.KindBarRating, model.KindEmotionsRatings:
		return f.chooseOne(ctx, base, q, choices(q), current)

	case model.KindRating:
		return f.chooseOne(ctx, base, q, rateValues(q), current)

	case model.KindImagePicker:
		if multi, _ := q.Param("multi_select"); multi == true {
			return f.chooseMany(ctx, base, choices(q), current)
		}
		return f.chooseOne(ctx, base, q, choices(q), current)

	case model.KindCheckbox, model.KindTagBox, model.KindSortableList:
		return f.chooseMany(ctx, base, choices(q), current)

	case model.KindNoUISlider, model.KindBootstrapSlider:
		return f.text(ctx, base, TextNumber)
	}

	switch strings.ToLower(stringParam(q, "input_type")) {
	case "number", "range":
		return f.text(ctx, base, TextNumber)
	case "password":
		return f.text(ctx, base, TextSecret)
	}
	return f.text(ctx, base, TextLine)
}

func (f *Filler) text(ctx context.Context, base Prompt, mode TextMode) (any, bool, error) {
	answer, err := f.driver.Text(ctx, TextPrompt{Prompt: base, Mode: mode})
	if err != nil {
		return nil, true, err
	}
	value := textAnswer(answer)
	if value == nil || mode != TextNumber {
		return value, true, nil
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(answer), 64); err == nil {
		return n, true, nil
	}
	return value, true, nil
}

func (f *Filler) chooseOne(ctx context.Context, base Prompt, q *model.Question, list []Choice, current any) (any, bool, error) {
	base.Default = ""
	p := ChoicePrompt{Prompt: base, Choices: list, Optional: !q.Required}
	for i, c := range list {
		if current != nil && fmt.Sprint(c.Value) == fmt.Sprint(current) {
			p.Selected = []int{i}
			break
		}
	}
	picked, ok, err := f.driver.Choose(ctx, p)
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, nil
	}
	return picked.Value, true, nil
}

func (f *Filler) chooseMany(ctx context.Context, base Prompt, list []Choice, current any) (any, bool, error) {
	if len(list) == 0 {
		return nil, true, nil
	}
	base.Default = ""
	p := ChoicePrompt{Prompt: base, Choices: list}
	selected := map[string]struct{}{}
	if items, ok := current.([]any); ok {
		for _, item := range items {
			selected[fmt.Sprint(item)] = struct{}{}
		}
	}
	for i, c := range list {
		if _, ok := selected[fmt.Sprint(c.Value)]; ok {
			p.Selected = append(p.Selected, i)
		}
	}
	picked, err := f.driver.ChooseMany(ctx, p)
	if err != nil {
		return nil, true, err
	}
	if len(picked) == 0 {
		return nil, true, nil
	}
	out := make([]any, 0, len(picked))
	for _, c := range picked {
		out = append(out, c.Value)
	}
	return out, true, nil
}

// choices reads the choices param: plain values or {"value", "text"} objects.
func choices(q *model.Question) []Choice {
	raw, _ := q.Param("choices")
	return choiceList(raw)
}

func choiceList(raw any) []Choice {
	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []string:
		for _, item := range list {
			items = append(items, item)
		}
	}
	out := make([]Choice, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			value := obj["value"]
			text, _ := obj["text"].(string)
			if text == "" {
				text = fmt.Sprint(value)
			}
			out = append(out, Choice{Value: value, Text: text})
			continue
		}
		out = append(out, Choice{Value: item, Text: fmt.Sprint(item)})
	}
	return out
}

// rateValues lists rate_values when declared, else rate_min to rate_max by
// rate_step.
func rateValues(q *model.Question) []Choice {
	raw, _ := q.Param("rate_values")
	if list := choiceList(raw); len(list) > 0 {
		return list
	}
	lo, hi, step := numberParam(q, "rate_min", 1), numberParam(q, "rate_max", 5), numberParam(q, "rate_step", 1)
	if step <= 0 {
		step = 1
	}
	var out []Choice
	for v := lo; v <= hi; v += step {
		out = append(out, Choice{Value: v, Text: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return out
}

func label(name string, q *model.Question) string {
	if q.Title != "" {
		return q.Title
	}
	if title := stringParam(q, "title"); title != "" {
		return title
	}
	return name
}

func stringParam(q *model.Question, name string) string {
	value, _ := q.Param(name)
	s, _ := value.(string)
	return s
}

func numberParam(q *model.Question, name string, fallback float64) float64 {
	value, _ := q.Param(name)
	switch n := value.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return fallback
}

func defaultText(q *model.Question, current any) string {
	if current != nil {
		return fmt.Sprint(current)
	}
	return stringParam(q, "default_value")
}

func textAnswer(answer string) any {
	if strings.TrimSpace(answer) == "" {
		return nil
	}
	return answer
}
