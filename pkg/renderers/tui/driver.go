package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Prompt is a question as shown in the terminal.
type Prompt struct {
	Name    string
	Message string
	Help    string
	Default string
}

// TextMode selects how a free text answer is read.
type TextMode int

const (
	TextLine TextMode = iota
	TextNumber
	TextSecret
	TextMultiline
)

// TextPrompt asks for free text.
type TextPrompt struct {
	Prompt
	Mode TextMode
}

// Choice is a selectable answer: Value is stored, Text is displayed.
type Choice struct {
	Value any
	Text  string
}

// ChoicePrompt asks for one or several of Choices. Selected holds the
// preselected indices. Optional single choice prompts can be skipped.
type ChoicePrompt struct {
	Prompt
	Choices  []Choice
	Selected []int
	Optional bool
}

// PromptDriver talks to the terminal. Tests replace it with a scripted one.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Confirm(ctx context.Context, p Prompt, def bool) (bool, error)
	// Choose returns false when an optional prompt was skipped.
	Choose(ctx context.Context, p ChoicePrompt) (Choice, bool, error)
	ChooseMany(ctx context.Context, p ChoicePrompt) ([]Choice, error)
	Notice(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver(out io.Writer) PromptDriver {
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt survey.Prompt
	var opts []survey.AskOpt
	switch p.Mode {
	case TextSecret:
		prompt = &survey.Password{Message: p.Message, Help: p.Help}
	case TextMultiline:
		prompt = &survey.Multiline{Message: p.Message, Help: p.Help, Default: p.Default}
	case TextNumber:
		prompt = &survey.Input{Message: p.Message, Help: p.Help, Default: p.Default}
		opts = append(opts, survey.WithValidator(numeric))
	default:
		prompt = &survey.Input{Message: p.Message, Help: p.Help, Default: p.Default}
	}
	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, p Prompt, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: p.Message, Help: p.Help, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (Choice, bool, error) {
	if err := ctx.Err(); err != nil {
		return Choice{}, false, err
	}
	options := texts(p.Choices)
	if p.Optional {
		options = append(options, SkipOption)
	}
	if len(options) == 0 {
		return Choice{}, false, nil
	}
	prompt := &survey.Select{Message: p.Message, Help: p.Help, Options: options}
	if len(p.Selected) > 0 && p.Selected[0] >= 0 && p.Selected[0] < len(p.Choices) {
		prompt.Default = options[p.Selected[0]]
	}
	var idx int
	if err := survey.AskOne(prompt, &idx); err != nil {
		return Choice{}, false, translateSurveyErr(err)
	}
	if idx < 0 || idx >= len(p.Choices) {
		return Choice{}, false, nil
	}
	return p.Choices[idx], true, nil
}

func (d *surveyDriver) ChooseMany(ctx context.Context, p ChoicePrompt) ([]Choice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.Choices) == 0 {
		return nil, nil
	}
	options := texts(p.Choices)
	prompt := &survey.MultiSelect{Message: p.Message, Help: p.Help, Options: options}
	var defaults []string
	for _, idx := range p.Selected {
		if idx >= 0 && idx < len(options) {
			defaults = append(defaults, options[idx])
		}
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}
	var picked []int
	if err := survey.AskOne(prompt, &picked); err != nil {
		return nil, translateSurveyErr(err)
	}
	out := make([]Choice, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(p.Choices) {
			out = append(out, p.Choices[idx])
		}
	}
	return out, nil
}

func (d *surveyDriver) Notice(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// numeric accepts an empty answer or anything that parses as a number.
func numeric(ans interface{}) error {
	s, _ := ans.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func texts(choices []Choice) []string {
	out := make([]string, 0, len(choices)+1)
	for _, c := range choices {
		out = append(out, c.Text)
	}
	return out
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
