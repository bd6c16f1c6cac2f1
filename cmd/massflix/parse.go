package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/massflix/pkg/title"
)

// ParseResultJSON is the JSON-friendly representation of a parsed filename.
type ParseResultJSON struct {
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"`
	Season     int    `json:"season,omitempty"`
	Episode    int    `json:"episode,omitempty"`
	Normalized string `json:"normalized"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>",
	Short: "Parse a media filename (local, no server needed)",
	Long: `Parse a media filename to extract the title, year, and episode markers.

Examples:
  massflix parse "The.Movie.Title.(2021).1080p.mkv"
  massflix parse --series "Breaking.Bad.S02E05.Episode.Name.mp4"
  massflix parse --json "Inception (2010)"`,
	Args: cobra.ExactArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("series", false, "Parse as a series filename (detect SxxEyy markers)")
	// Note: --json is inherited from root as persistent flag
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	series, _ := cmd.Flags().GetBool("series")

	name := stripExtension(args[0])
	parsed := title.Parse(name, series)

	if jsonOutput {
		printJSON(ParseResultJSON{
			Title:      parsed.Title,
			Year:       parsed.Year,
			Season:     parsed.Season,
			Episode:    parsed.Episode,
			Normalized: title.Normalize(parsed.Title),
		})
		return nil
	}

	fmt.Printf("Title:       %s\n", parsed.Title)
	if parsed.Year > 0 {
		fmt.Printf("Year:        %d\n", parsed.Year)
	}
	if parsed.HasEpisode() {
		fmt.Printf("Season:      %d\n", parsed.Season)
		fmt.Printf("Episode:     %d\n", parsed.Episode)
	}
	fmt.Printf("Normalized:  %s\n", title.Normalize(parsed.Title))
	return nil
}

// stripExtension removes a trailing video file extension, if any.
func stripExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v":
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
