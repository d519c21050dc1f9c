package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questions/pkg/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = newRootCmd(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}
	root := &cobra.Command{
		Use:           "questions-cli",
		Short:         "Build, render and validate SurveyJS forms",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = a.cfg.Logger(cmd.ErrOrStderr())
		},
	}
	root.AddCommand(
		newResourcesCmd(a),
		newRenderCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newFillCmd(a),
		newServeCmd(a),
	)
	return root
}
