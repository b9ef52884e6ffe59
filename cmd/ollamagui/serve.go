package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ollamagui/internal/common/execx"
	"ollamagui/internal/config"
	"ollamagui/internal/httpapi"
	"ollamagui/internal/service"
)

func newServeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o)
		},
	}
}

func runServe(cmd *cobra.Command, o *options) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.Addr).Msg("listen")
		return err
	}
	// Graceful shutdown (Ctrl+C / SIGTERM)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg, log, ln, nil)
}

// serve runs the API on ln until ctx is done, then drains requests and
// background pulls within cfg.ShutdownTimeout. A nil runner runs real
// processes.
func serve(ctx context.Context, cfg config.Config, log zerolog.Logger, ln net.Listener, runner execx.Runner) error {
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(config.Bool(cfg.CORSEnabled), cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(baseCtx)

	svc := service.FromConfig(baseCtx, cfg, runner, log)
	srv := &http.Server{
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("ollama_url", cfg.OllamaURL).
			Str("version", version).
			Msg("ollamagui listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
	defer cancel()
	// Cancel in-flight chat relays and background pulls along with the listener.
	cancelBase()
	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
		errs = append(errs, err)
	}
	if err := svc.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("download shutdown error")
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
