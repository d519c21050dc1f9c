package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questions/pkg/handler"
)

func newServeCmd(a *app) *cobra.Command {
	var flags formFlags
	var addr, title string
	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve a SurveyJS document and validate posted answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := flags.load(a, args[0])
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			pattern, err := handler.RegisterRoutes(mux, "/", f,
				handler.WithTitle(title),
				handler.WithLogger(a.logger),
				handler.WithOnSubmit(func(_ context.Context, values map[string]any) error {
					a.logger.Info("serve.submit.accepted",
						slog.String("form", f.Name()),
						slog.Any("answers", values),
					)
					return nil
				}),
			)
			if err != nil {
				return err
			}

			server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-cmd.Context().Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdown)
			}()
			a.logger.Info("serve.listen", slog.String("addr", addr), slog.String("path", pattern))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	flags.register(cmd, a)
	cmd.Flags().StringVar(&addr, "addr", a.cfg.Addr, "listen address")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	return cmd
}
