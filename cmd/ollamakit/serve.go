package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ollamakit/internal/config"
	"ollamakit/internal/httpapi"
	"ollamakit/internal/session"
	"ollamakit/internal/telemetry"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the web dashboard",
		Example: "  ollamakit serve --addr :8501",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Addr, err)
			}
			return a.serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults addr or :8501)")
	return cmd
}

// serve runs the dashboard on ln until ctx is done, then drains in-flight
// requests for up to five seconds.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	cfg := a.cfg
	httpapi.SetLogger(a.log.With().Str("component", "httpapi").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetTurnTimeoutSeconds(int64(cfg.TurnTimeoutSeconds))
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, nil, nil)
	httpapi.SetDefaults(cfg.DefaultModel, cfg.DashboardOptions())
	httpapi.SetBaseContext(ctx)
	defer httpapi.SetBaseContext(nil)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, "ollamakit", version, a.log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			a.log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	if a.cfgPath != "" {
		go a.watchConfig(ctx)
	}

	store := session.NewStore(
		session.WithTTL(time.Duration(cfg.SessionTTLMinutes)*time.Minute),
		session.WithMaxSessions(cfg.MaxSessions),
	)
	go store.Janitor(ctx, time.Minute)

	srv := &http.Server{
		Handler:           httpapi.NewMux(a.svc, store),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", ln.Addr().String()).Str("model_server", cfg.BaseURL).Msg("dashboard listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		a.log.Warn().Err(err).Msg("graceful shutdown error")
	}
	a.log.Info().Msg("dashboard stopped")
	return nil
}

// watchConfig applies default model and sampling changes from the config
// file while serving. Other fields need a restart.
func (a *app) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, a.cfgPath, func(cfg config.Config, err error) {
		if err != nil {
			a.log.Warn().Err(err).Str("path", a.cfgPath).Msg("config reload failed, keeping previous")
			return
		}
		httpapi.SetDefaults(cfg.DefaultModel, cfg.DashboardOptions())
		a.log.Info().Str("path", a.cfgPath).Str("default_model", cfg.DefaultModel).Msg("config reloaded")
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("config watch stopped")
	}
}
