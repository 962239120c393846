// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/translation-compare/internal/compare"
)

var alignCmd = &cobra.Command{
	Use:   "align [dir]",
	Short: "Lay every engine's translations side by side without scoring",
	Long: `Align reads the engine files of one directory (default: the current
directory) and writes a table per image with one row per engine, in file
order. No BLEU scores are computed. The first malformed file aborts the run
unless --on-error=continue.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)
}

func runAlign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if _, err := compare.Align(context.Background(), dir, cfg, statusWriter(cmd)); err != nil {
		return fmt.Errorf("aligning %s: %w", dir, err)
	}
	return nil
}
