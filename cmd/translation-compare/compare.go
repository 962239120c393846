// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/translation-compare/internal/compare"
	"github.com/pdiddy/translation-compare/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare [dirs...]",
	Short: "Score engines with BLEU and write a ranked comparison per directory",
	Long: `Compare processes each directory in turn: it collects every engine file,
scores each engine against every reference engine with smoothed sentence
BLEU, ranks the engines per image and overall, and writes the report into
the directory.

Without arguments it processes manga/ja2en and manga/ja2zh relative to
--root (default: the directory holding the executable). Missing directories
are reported and skipped; malformed files are reported and skipped unless
--on-error=fail-fast.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("root", "", "base directory for the default directories (default: executable directory)")
	compareCmd.Flags().String("language", "", "BCP 47 tag used to lowercase word-level text (default en)")
	compareCmd.Flags().String("export", "", "also write scores to this .yaml or .json file in each directory")

	for key, flag := range map[string]string{
		"compare.root":     "root",
		"scoring.language": "language",
		"report.export":    "export",
	} {
		if err := viper.BindPFlag(key, compareCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dirs := args
	if len(dirs) == 0 {
		root := cfg.Root
		if root == "" {
			root, err = executableDir()
			if err != nil {
				return err
			}
		}
		dirs = compare.ResolveDirs(root, cfg.Dirs)
	}

	w := statusWriter(cmd)
	result := compare.ProcessBatch(context.Background(), dirs, cfg, w)
	for _, d := range result.Dirs {
		if len(d.Report.Summary) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", d.Dir)
		report.PrintSummary(w, d.Report)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d directory(s) failed", result.Failed)
	}
	return nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}
