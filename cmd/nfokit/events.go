package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent events",
	RunE:  runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recent, err := events.NewEventLog(db).Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if jsonOutput {
		out, err := json.MarshalIndent(recent, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(recent) == 0 {
		fmt.Println("No events")
		return nil
	}

	fmt.Printf("  %-20s %-24s %-15s\n", "TIME", "TYPE", "ENTITY")
	fmt.Println("  " + strings.Repeat("-", 62))
	for _, e := range recent {
		entity := fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)
		fmt.Printf("  %-20s %-24s %-15s\n",
			e.OccurredAt.Format(time.DateTime), e.EventType, entity)
	}
	return nil
}
