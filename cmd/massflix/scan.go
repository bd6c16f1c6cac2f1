package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/massflix/internal/config"
	"github.com/vmunix/massflix/internal/ingest"
	"github.com/vmunix/massflix/internal/probe"
	"github.com/vmunix/massflix/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the media tree and register content with the server",
	Long: `Walk the media directories and submit every discovered video file
to the catalog server. Re-running a scan updates existing entries
instead of duplicating them.

Examples:
  massflix scan
  massflix scan --root /mnt/media --strategy recursive
  massflix scan --probe`,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("config", "config.toml", "Path to config file")
	scanCmd.Flags().String("root", "", "Media root directory (overrides config)")
	scanCmd.Flags().String("strategy", "", "Traversal strategy: shallow or recursive (overrides config)")
	scanCmd.Flags().Bool("probe", false, "Probe files with ffprobe for duration and codec")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	rootOverride, _ := cmd.Flags().GetString("root")
	strategyOverride, _ := cmd.Flags().GetString("strategy")
	probeFlag, _ := cmd.Flags().GetBool("probe")

	cfg, err := config.LoadWithoutValidation(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if rootOverride != "" {
		cfg.Media.Root = rootOverride
	}
	if strategyOverride != "" {
		cfg.Scanner.Strategy = strategyOverride
	}
	if probeFlag {
		cfg.Scanner.Probe = true
	}

	// --server beats the configured API URL when given explicitly.
	apiURL := cfg.Scanner.APIURL
	if cmd.Flags().Changed("server") {
		apiURL = strings.TrimSuffix(serverURL, "/") + "/api"
	}

	level := slog.LevelInfo
	if jsonOutput {
		level = slog.LevelError // keep stdout machine-readable
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var prober scanner.Prober
	if cfg.Scanner.Probe {
		prober = probe.New(cfg.Scanner.FFprobePath, cfg.Scanner.ProbeTimeout)
	}

	client := ingest.NewClient(apiURL, cfg.Scanner.APIToken, cfg.Scanner.HTTPTimeout)

	sc := scanner.New(scanner.Config{
		MediaRoot:   cfg.Media.Root,
		MountPrefix: cfg.Media.MountPrefix,
		Strategy:    scanner.Strategy(cfg.Scanner.Strategy),
	}, client, prober, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := sc.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]int{
			"scanned":   stats.Scanned,
			"submitted": stats.Submitted,
			"failed":    stats.Failed,
		})
		return nil
	}

	// Partial failure is a normal outcome of the best-effort batch; the exit
	// code reflects only whether the pass ran to completion.
	fmt.Printf("Scanned:    %d\n", stats.Scanned)
	fmt.Printf("Submitted:  %d\n", stats.Submitted)
	fmt.Printf("Failed:     %d\n", stats.Failed)
	return nil
}
