package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Long: `List catalog entries, optionally filtered by type.

Examples:
  massflix list
  massflix list --type series
  massflix list --type movie --limit 10 --json`,
	Args: cobra.NoArgs,
	RunE: runListCmd,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("type", "t", "", "Filter by content type (movie or series)")
	listCmd.Flags().Int("limit", 50, "Maximum entries to return")
}

func runListCmd(cmd *cobra.Command, args []string) error {
	contentType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL)
	list, err := client.ListContent(contentType, limit)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if jsonOutput {
		printJSON(list)
		return nil
	}

	if list.Total == 0 {
		fmt.Println("No content found.")
		return nil
	}

	fmt.Printf("%-5s %-7s %-40s %-6s %s\n", "ID", "TYPE", "TITLE", "YEAR", "EPISODE")
	for _, item := range list.Items {
		episode := ""
		if item.SeasonNumber != nil && item.EpisodeNumber != nil {
			episode = fmt.Sprintf("S%02dE%02d", *item.SeasonNumber, *item.EpisodeNumber)
		}
		title := truncateTitle(item.Title, 40)
		fmt.Printf("%-5d %-7s %-40s %-6d %s\n", item.ID, item.ContentType, title, item.ReleaseYear, episode)
	}
	fmt.Printf("\n%d of %d entries\n", len(list.Items), list.Total)
	return nil
}

// truncateTitle shortens a title to at most max runes, ellipsizing. Truncation
// counts runes, not bytes, so multibyte titles are never split mid-sequence.
func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
