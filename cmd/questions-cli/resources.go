package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questions/pkg/resources"
	"github.com/goliatone/go-questions/pkg/widgets"
)

func newResourcesCmd(a *app) *cobra.Command {
	var includeWidgets bool
	var resourceURL string
	cmd := &cobra.Command{
		Use:   "resources PLATFORM THEME",
		Short: "List the scripts and stylesheets a platform and theme need",
		Long: "List required resources for a platform and theme.\n\n" +
			"Platforms are: " + strings.Join(resources.Platforms(), ", ") + ".\n" +
			"Themes are: " + strings.Join(resources.DefaultCatalog().Themes(), ", ") + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, theme := args[0], args[1]
			js, err := resources.PlatformJS(platform, resourceURL)
			if err != nil {
				return err
			}
			css := resources.DefaultCatalog().ThemeCSS(theme, resourceURL)

			out := cmd.OutOrStdout()
			printList(out, "Required Javascript resources:", js)
			if includeWidgets {
				printWidgets(out, "Widget specific Javascript resources:", func(w widgets.Assets) []string { return w.JS }, resourceURL)
			}
			printList(out, "Required CSS resources:", css)
			if includeWidgets {
				printWidgets(out, "Widget specific CSS resources:", func(w widgets.Assets) []string { return w.CSS }, resourceURL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeWidgets, "include-widgets", false, "include widget resources")
	cmd.Flags().StringVar(&resourceURL, "resource-url", a.cfg.ResourceURL, "base URL for self hosted resources")
	return cmd
}

func printList(out io.Writer, heading string, urls []string) {
	fmt.Fprintln(out, heading)
	for _, url := range urls {
		fmt.Fprintf(out, "    %s\n", url)
	}
	fmt.Fprintln(out)
}

func printWidgets(out io.Writer, heading string, pick func(widgets.Assets) []string, base string) {
	fmt.Fprintln(out, heading)
	registry := widgets.Default()
	for _, name := range registry.Names() {
		assets, _ := registry.Lookup(name)
		urls := pick(assets)
		if len(urls) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", name)
		for _, url := range urls {
			fmt.Fprintf(out, "    %s\n", resources.Rewrite(url, resources.Base(base)))
		}
	}
	fmt.Fprintln(out)
}
