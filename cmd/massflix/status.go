package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog server status",
	Long: `Show the catalog server status and library counts.

Examples:
  massflix status
  massflix status --json`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	uptime := (time.Duration(status.UptimeSeconds) * time.Second).String()
	fmt.Printf("massflix v%s | Server: %s | Status: %s | Uptime: %s\n\n",
		version, serverURL, status.Status, uptime)

	fmt.Println("Library")
	fmt.Printf("  Movies:  %d\n", status.Movies)
	fmt.Printf("  Series:  %d\n", status.Series)
	return nil
}
