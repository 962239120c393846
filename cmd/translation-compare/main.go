// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the translation-compare CLI.
// It aligns per-engine translation files by image and box, scores engines
// against human references with BLEU, and writes a Markdown comparison.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/translation-compare/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the translation-compare CLI.
var rootCmd = &cobra.Command{
	Use:   "translation-compare",
	Short: "Compare machine translation engines against human references",
	Long: `translation-compare reads one translation project file (*.itp) per engine,
aligns the translations by image and text box, and writes a Markdown table
per image into the processed directory.

compare scores every engine against the engines whose name starts with the
reference prefix (default "human") using smoothed sentence BLEU and ranks
them. align only lays the translations side by side.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./translation-compare.yaml or ~/.config/translation-compare/config.yaml)")
	rootCmd.PersistentFlags().String("pattern", types.DefaultPattern, "glob of engine files inside a directory")
	rootCmd.PersistentFlags().String("reference-prefix", types.DefaultReferencePrefix, "name prefix of human reference engines")
	rootCmd.PersistentFlags().String("temp-marker", types.DefaultTempMarker, "skip images whose name contains this marker")
	rootCmd.PersistentFlags().String("on-error", "", "malformed file handling: continue or fail-fast (default: continue for compare, fail-fast for align)")
	rootCmd.PersistentFlags().String("output", types.DefaultOutputFile, "report file name written inside each directory")
	rootCmd.PersistentFlags().String("locale", types.DefaultLocale, "report labels: en or zh")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-file status output")

	bindFlags(rootCmd, map[string]string{
		"collect.pattern":          "pattern",
		"collect.reference_prefix": "reference-prefix",
		"collect.temp_marker":      "temp-marker",
		"collect.on_error":         "on-error",
		"report.output_file":       "output",
		"report.locale":            "locale",
	})
}

// bindFlags binds config keys to persistent flags of cmd.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("translation-compare")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "translation-compare"))
		}
	}

	viper.SetEnvPrefix("TRANSLATION_COMPARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("scoring.language", types.DefaultLanguage)
	viper.SetDefault("compare.dirs", types.DefaultDirs)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the run configuration from flags, environment, and
// the config file, in viper's precedence order.
func loadConfig() (types.CompareConfig, error) {
	cfg := types.DefaultCompareConfig()
	cfg.Collect = types.CollectConfig{
		Pattern:         viper.GetString("collect.pattern"),
		ReferencePrefix: viper.GetString("collect.reference_prefix"),
		TempMarker:      viper.GetString("collect.temp_marker"),
		OnError:         types.ErrorPolicy(viper.GetString("collect.on_error")),
	}
	cfg.Scoring.Language = viper.GetString("scoring.language")
	cfg.Report = types.ReportConfig{
		OutputFile: viper.GetString("report.output_file"),
		Locale:     viper.GetString("report.locale"),
		Export:     viper.GetString("report.export"),
	}
	cfg.Root = viper.GetString("compare.root")
	cfg.Dirs = viper.GetStringSlice("compare.dirs")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// statusWriter returns where per-file status lines go.
func statusWriter(cmd *cobra.Command) io.Writer {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
