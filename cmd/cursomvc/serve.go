package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/cursomvc/internal/http/server"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(load loadFunc) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el API HTTP (y el listener de métricas si está configurado)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if migrate {
				cfg.Flags.Migrate = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log := logger.With(logger.Component("serve"))
			ctx = logger.ToContext(ctx, log)

			rt, err := server.Build(ctx, cfg, version)
			if err != nil {
				return err
			}
			defer func() {
				if err := rt.Close(); err != nil {
					log.Warn("runtime close", logger.Err(err))
				}
			}()

			servers := []*http.Server{{
				Addr:         cfg.Server.Addr,
				Handler:      rt.App.Handler,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}}
			if rt.MetricsHandler != nil {
				mux := http.NewServeMux()
				mux.Handle("/metrics", rt.MetricsHandler)
				servers = append(servers, &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second})
			}

			g, gctx := errgroup.WithContext(ctx)
			for _, srv := range servers {
				srv := srv
				g.Go(func() error {
					log.Info("listening", logger.String("addr", srv.Addr))
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
			}

			// shutdown ordenado al recibir señal o si un listener falla
			g.Go(func() error {
				<-gctx.Done()
				log.Info("shutting down")
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				var errs []error
				for _, srv := range servers {
					errs = append(errs, srv.Shutdown(sctx))
				}
				return errors.Join(errs...)
			})

			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Aplica migraciones antes de arrancar (equivale a flags.migrate)")
	return cmd
}
