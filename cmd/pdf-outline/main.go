// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-outline CLI.
//
// The root command extracts the title and heading outline of one PDF and
// writes it as JSON:
//
//	pdf-outline <input_pdf> <output_json>
//
// Subcommands render outlines in the terminal, query the outline index,
// serve the HTTP API and print the active rules table.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from log_level and log_format before any command runs.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd extracts an outline when called with two arguments.
var rootCmd = &cobra.Command{
	Use:   "pdf-outline <input_pdf> <output_json>",
	Short: "Extract the title and heading outline of a PDF",
	Long: `pdf-outline reads a PDF, picks its title from the first text block or
the document metadata, classifies every text block as an H1 to H4 heading
or body text, and writes {"title", "outline"} as JSON.

When the input does not exist, the file of the same name inside the
assets directory (default "static") is used instead. Per-document
overrides and the heading phrase tables come from the rules file; run
"pdf-outline rules" to print the active table.`,
	Args: cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(logConfig())
		if err != nil {
			return err
		}
		logger = l
		cmd.SilenceUsage = true
		return nil
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf-outline.yaml or ~/.config/pdf-outline/pdf-outline.yaml)")
	pf.String("assets-dir", "static", "directory searched for the input when its path does not exist")
	pf.String("backend", "native", "text extraction backend: native or pdftotext")
	pf.Bool("fallback-pdftotext", true, "retry with pdftotext when the native backend cannot read a PDF")
	pf.String("rules", "", "YAML rules file (default: built-in rules)")
	pf.String("index-dir", "output/index", "directory holding the outline index database")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlag("assets_dir", pf.Lookup("assets-dir"))
	bindFlag("backend", pf.Lookup("backend"))
	bindFlag("fallback_pdftotext", pf.Lookup("fallback-pdftotext"))
	bindFlag("rules_file", pf.Lookup("rules"))
	bindFlag("index_dir", pf.Lookup("index-dir"))
	bindFlag("log_level", pf.Lookup("log-level"))
	bindFlag("log_format", pf.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-outline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-outline"))
		}
	}

	viper.SetEnvPrefix("PDF_OUTLINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(cfg types.LogConfig) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q: use text or json", cfg.Format)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
