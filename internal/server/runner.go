// Package server ties the HTTP API and the background scan loop into one
// supervised lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ScanFunc runs one full scan pass.
type ScanFunc func(ctx context.Context) error

// Config for the runner.
type Config struct {
	Addr            string
	ScanInterval    time.Duration // 0 disables the periodic scan loop
	ShutdownTimeout time.Duration
}

// Runner supervises the HTTP server and the optional scan loop.
type Runner struct {
	handler http.Handler
	scan    ScanFunc // nil disables scanning
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. scan may be nil when the daemon serves
// the catalog only.
func NewRunner(handler http.Handler, cfg Config, scan ScanFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Runner{
		handler: handler,
		scan:    scan,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts all components and blocks until the context is canceled or a
// component fails.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: r.handler}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("http shutdown failed", "error", err)
		}
		return ctx.Err()
	})

	if r.scan != nil && r.config.ScanInterval > 0 {
		g.Go(func() error {
			return r.scanLoop(ctx)
		})
	}

	return g.Wait()
}

// scanLoop runs one pass at startup and then on every tick. A failed pass
// is logged and the loop keeps going.
func (r *Runner) scanLoop(ctx context.Context) error {
	r.runScan(ctx)

	ticker := time.NewTicker(r.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.runScan(ctx)
		}
	}
}

func (r *Runner) runScan(ctx context.Context) {
	if err := r.scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("scan pass failed", "error", err)
	}
}
