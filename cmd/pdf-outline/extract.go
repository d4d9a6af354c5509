// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-outline/internal/outline"
)

func runExtract(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	withIndex, _ := cmd.Flags().GetBool("index")

	cfg := extractionConfig()
	outFormat, err := outline.FormatFor(args[1], format)
	if err != nil {
		return err
	}

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	input := outline.ResolvePath(args[0], cfg.AssetsDir)
	res, err := ext.Extract(input)
	if err != nil {
		return err
	}

	if err := outline.Write(args[1], res, outFormat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d headings)\n", args[1], len(res.Outline))

	if withIndex {
		store, err := openIndex()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(context.Background(), outline.DocumentID(input), input, res); err != nil {
			return fmt.Errorf("indexing %s: %w", input, err)
		}
		logger.Info("outline indexed", "doc", outline.DocumentID(input), "index_dir", indexConfig().Dir)
	}
	return nil
}

func init() {
	rootCmd.Flags().String("format", "", "output format: json or yaml (default: from the output file extension)")
	rootCmd.Flags().Bool("index", false, "also record the outline in the index")
}
