package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questions"
	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/wire"
)

type formFlags struct {
	platform    string
	theme       string
	htmlID      string
	action      string
	resourceURL string
}

func (f *formFlags) register(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVar(&f.platform, "platform", a.cfg.Platform, "client platform")
	cmd.Flags().StringVar(&f.theme, "theme", a.cfg.Theme, "survey theme")
	cmd.Flags().StringVar(&f.htmlID, "html-id", a.cfg.HTMLID, "id of the element the survey mounts into")
	cmd.Flags().StringVar(&f.action, "action", a.cfg.Action, "URL answers are posted to")
	cmd.Flags().StringVar(&f.resourceURL, "resource-url", a.cfg.ResourceURL, "base URL for self hosted resources")
}

func (f *formFlags) load(a *app, path string) (*form.Form, error) {
	return questions.Load(path,
		form.WithPlatform(f.platform),
		form.WithTheme(f.theme),
		form.WithHTMLID(f.htmlID),
		form.WithAction(f.action),
		form.WithResourceURL(f.resourceURL),
		form.WithLogger(a.logger),
	)
}

func newRenderCmd(a *app) *cobra.Command {
	var flags formFlags
	var output, title string
	var jsOnly bool
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a standalone page, or only the script, for a SurveyJS document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := flags.load(a, args[0])
			if err != nil {
				return err
			}
			var rendered string
			if jsOnly {
				rendered, err = f.RenderJS(cmd.Context(), nil)
			} else {
				rendered, err = f.RenderHTML(cmd.Context(), title, nil)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(rendered))
		},
	}
	flags.register(cmd, a)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().BoolVar(&jsOnly, "js", false, "render only the initialisation script")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	var omitDefaults, asYAML bool
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Normalise a SurveyJS document to its allow-listed JSON or YAML form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := questions.Load(args[0], form.WithLogger(a.logger))
			if err != nil {
				return err
			}
			result, err := f.Assemble()
			if err != nil {
				return err
			}
			var opts []wire.Option
			if omitDefaults {
				opts = append(opts, wire.OmitDefaults())
			}
			var data []byte
			if asYAML {
				data, err = wire.MarshalYAML(result.Survey, opts...)
			} else {
				data, err = wire.MarshalIndent(result.Survey, "", "  ", opts...)
				data = append(data, '\n')
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&omitDefaults, "omit-defaults", false, "drop attributes holding their default")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit YAML instead of JSON")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", path)
	return nil
}
