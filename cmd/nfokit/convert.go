package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/pkg/nfo"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Rewrite a sidecar file in another dialect",
	Long: `Parses a sidecar file and prints it rewritten in the requested
dialect. Unrecognized tags are carried over unless --clean is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("dialect", "d", "kodi", "Target dialect")
	convertCmd.Flags().Bool("clean", false, "Drop unrecognized tags")
}

func runConvert(cmd *cobra.Command, args []string) error {
	dialectName, _ := cmd.Flags().GetString("dialect")
	clean, _ := cmd.Flags().GetBool("clean")

	dialect, err := nfo.ParseDialect(dialectName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	rec, err := nfo.NewReader(nil).Parse(data)
	if err != nil {
		return fmt.Errorf("parse sidecar: %w", err)
	}
	if !rec.Valid() {
		return fmt.Errorf("sidecar has no title")
	}

	w, err := nfo.NewWriter(nfo.Options{Dialect: dialect, Clean: clean}, nil)
	if err != nil {
		return err
	}
	out, err := w.Write(rec)
	if err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}

	_, err = os.Stdout.Write(out)
	return err
}
