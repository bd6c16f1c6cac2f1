package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/massflix/internal/api"
	"github.com/vmunix/massflix/internal/catalog"
	"github.com/vmunix/massflix/internal/config"
	"github.com/vmunix/massflix/internal/ingest"
	"github.com/vmunix/massflix/internal/migrations"
	"github.com/vmunix/massflix/internal/probe"
	"github.com/vmunix/massflix/internal/scanner"
	"github.com/vmunix/massflix/internal/server"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store := catalog.NewStore(db)

	mux := http.NewServeMux()
	apiServer := api.New(store, api.Config{ScannerToken: cfg.Scanner.APIToken}, logger.With("component", "api"))
	apiServer.RegisterRoutes(mux)

	// The media tree is served directly under the mount prefix.
	prefix := strings.TrimSuffix(cfg.Media.MountPrefix, "/")
	mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.Media.Root))))

	// Periodic scans write to the store directly, skipping the HTTP loop.
	var scanFunc server.ScanFunc
	if cfg.Scanner.Interval > 0 {
		var prober scanner.Prober
		if cfg.Scanner.Probe {
			prober = probe.New(cfg.Scanner.FFprobePath, cfg.Scanner.ProbeTimeout)
		}
		sc := scanner.New(scanner.Config{
			MediaRoot:   cfg.Media.Root,
			MountPrefix: cfg.Media.MountPrefix,
			Strategy:    scanner.Strategy(cfg.Scanner.Strategy),
		}, ingest.NewLocalSubmitter(store), prober, logger.With("component", "scanner"))

		scanFunc = func(ctx context.Context) error {
			_, err := sc.Run(ctx)
			return err
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"media_root", cfg.Media.Root,
		"scan_interval", cfg.Scanner.Interval,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(logRequests(mux, logger), server.Config{
		Addr:            addr,
		ScanInterval:    cfg.Scanner.Interval,
		ShutdownTimeout: 30 * time.Second,
	}, scanFunc, logger)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
