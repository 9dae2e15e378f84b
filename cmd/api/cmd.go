package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/whatis/internal/bootstrap"
	"github.com/GregMSThompson/whatis/internal/config"
	"github.com/GregMSThompson/whatis/internal/handlers"
	"github.com/GregMSThompson/whatis/internal/response"
	"github.com/GregMSThompson/whatis/internal/router"
	"github.com/GregMSThompson/whatis/internal/services"
)

const shutdownTimeout = 10 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	// services
	wserv := services.NewWhatisService(bs.Generator, cfg.LLMModel, string(cfg.LLMProvider))

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.WhatisSvc = wserv

	// router
	r := router.NewRouter(deps)
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// leave room for the upstream call on top of reading the request
		WriteTimeout: cfg.LLMTimeout + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, srv, bs.Log)
	stop()
	bs.Close()
	exitOnError("server failed", err, bs.Log)
}

// serve runs srv until ctx is done or the listener fails, then shuts it down.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
