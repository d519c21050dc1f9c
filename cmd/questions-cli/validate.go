package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/renderers/tui"
)

var errInvalidAnswers = errors.New("answers did not pass validation")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE ANSWERS",
		Short: "Validate a JSON object of answers against a SurveyJS document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := (&formFlags{platform: form.DefaultPlatform}).load(a, args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			var values map[string]any
			if err := json.Unmarshal(raw, &values); err != nil {
				return fmt.Errorf("decode answers: %w", err)
			}
			result, err := f.Validate(values, false)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			if !result.Passed {
				return errInvalidAnswers
			}
			return nil
		},
	}
}

func newFillCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fill FILE",
		Short: "Answer a SurveyJS document in the terminal and print the answers as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := (&formFlags{platform: form.DefaultPlatform}).load(a, args[0])
			if err != nil {
				return err
			}
			filler := tui.New(tui.WithOutput(cmd.ErrOrStderr()), tui.WithLogger(a.logger))
			values, err := filler.Fill(cmd.Context(), f)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(values, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(payload, '\n'))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
