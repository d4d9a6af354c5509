// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-outline/internal/outline"
	"github.com/pdiddy/pdf-outline/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <pdf>",
	Short: "Print the outline of a PDF as an indented tree",
	Long: `Show extracts the title and outline of a PDF exactly as the root command
does and prints them in the terminal, indented by heading level, instead
of writing a JSON file.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()
	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	input := outline.ResolvePath(args[0], cfg.AssetsDir)
	res, err := ext.Extract(input)
	if err != nil {
		return err
	}

	render.Outline(cmd.OutOrStdout(), outline.DocumentID(input), res)
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
