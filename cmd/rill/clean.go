package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/batch"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the rill report cache",
	Long:  "Remove cached rendered reports so every batch is diagnosed from scratch.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := batch.OpenDiskCache("rill")
	if err != nil {
		return fmt.Errorf("failed to open disk cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "report cache removed")
	return nil
}
