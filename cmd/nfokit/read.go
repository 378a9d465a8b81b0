package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/pkg/nfo"
)

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Parse a sidecar file and print the extracted metadata",
	Long: `Parses a sidecar file in any supported dialect and prints the
extracted record. Works locally, no database needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rec, err := nfo.NewReader(nil).Parse(data)
	if err != nil {
		return fmt.Errorf("parse sidecar: %w", err)
	}

	if jsonOutput {
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printRecord(rec)
	return nil
}

func printRecord(rec *nfo.Record) {
	fmt.Printf("Title:         %s\n", rec.Title)
	if rec.OriginalTitle != "" && rec.OriginalTitle != rec.Title {
		fmt.Printf("Original:      %s\n", rec.OriginalTitle)
	}
	if rec.Year != 0 {
		fmt.Printf("Year:          %d\n", rec.Year)
	}
	if rec.Runtime != 0 {
		fmt.Printf("Runtime:       %d min\n", rec.Runtime)
	}
	if rec.Certification != "" {
		fmt.Printf("Certification: %s\n", rec.Certification)
	}
	if len(rec.Genres) > 0 {
		fmt.Printf("Genres:        %s\n", strings.Join(rec.Genres, ", "))
	}
	for key, r := range rec.Ratings {
		fmt.Printf("Rating:        %s %.1f/%d (%d votes)\n", key, r.Value, r.Max, r.Votes)
	}
	for key, id := range rec.IDs {
		fmt.Printf("ID:            %s=%v\n", key, id)
	}
	if len(rec.Actors) > 0 {
		fmt.Printf("Actors:        %d\n", len(rec.Actors))
	}
	if len(rec.Unsupported) > 0 {
		fmt.Printf("Foreign tags:  %d (kept for rewrite)\n", len(rec.Unsupported))
	}
	if !rec.Valid() {
		fmt.Println("\nWarning: no title found, this sidecar would be ignored")
	}
}
