package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Edit library.root and targets, then run 'nfokit scan'.")
	return nil
}
