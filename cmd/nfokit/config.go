package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config syntax, required fields, and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	} else if configPath != "" {
		path = configPath
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Library:   %s (log: %s)\n", cfg.Library.Root, cfg.LogLevel)
	fmt.Printf("  Database:  %s\n", cfg.Database.Path)

	targets := make([]string, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, fmt.Sprintf("%s (%s)", t.Dialect, t.Naming))
	}
	fmt.Printf("  Targets:   %s\n", strings.Join(targets, ", "))

	opts := []string{}
	if cfg.Sync.CleanRewrite {
		opts = append(opts, "clean_rewrite")
	}
	if cfg.Sync.SingleStudio {
		opts = append(opts, "single_studio")
	}
	if cfg.Sync.WriteLockData {
		opts = append(opts, "write_lockdata")
	}
	if cfg.Sync.BackupRemoved {
		opts = append(opts, "backup_removed")
	}
	if len(opts) > 0 {
		fmt.Printf("  Options:   %s\n", strings.Join(opts, ", "))
	}
}
