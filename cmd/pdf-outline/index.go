// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/internal/outline"
	"github.com/pdiddy/pdf-outline/internal/render"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the outline index (add, list, get, search, delete)",
	Long: `Index keeps extracted outlines in a SQLite database under the index
directory so that headings can be listed and searched across documents.
Re-indexing a document replaces its previous headings.`,
}

// --- add subcommand ---

var indexAddCmd = &cobra.Command{
	Use:   "add <pdf>...",
	Short: "Extract outlines and record them in the index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexAdd,
}

func runIndexAdd(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()
	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	var failed int
	for _, arg := range args {
		input := outline.ResolvePath(arg, cfg.AssetsDir)
		res, err := ext.Extract(input)
		if err != nil {
			logger.Error("extraction failed", "path", arg, "error", err)
			failed++
			continue
		}
		docID := outline.DocumentID(input)
		if err := store.Save(ctx, docID, input, res); err != nil {
			return fmt.Errorf("indexing %s: %w", docID, err)
		}
		fmt.Fprintf(out, "  %s: %d headings\n", docID, len(res.Outline))
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// --- list subcommand ---

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

func runIndexList(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if docs == nil {
			docs = []index.DocumentSummary{}
		}
		return writeJSON(cmd.OutOrStdout(), docs)
	}
	render.Documents(cmd.OutOrStdout(), docs)
	return nil
}

// --- get subcommand ---

var indexGetCmd = &cobra.Command{
	Use:   "get <doc>",
	Short: "Print the stored outline of a document",
	Long: `Get prints the stored outline of a document, identified by its base
filename (for example file02.pdf), as JSON or as a tree with --tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexGet,
}

func runIndexGet(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	tree, _ := cmd.Flags().GetBool("tree")
	if tree {
		render.Outline(cmd.OutOrStdout(), args[0], res)
		return nil
	}
	data, err := outline.Marshal(res, types.OutputJSON)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search indexed headings by text, level or document",
	Long: `Search matches heading text as a case-insensitive substring. Filters
narrow the results to one heading level or one document. At least one of
the text or a filter is required.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --level, or --doc")
	}

	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if hits == nil {
			hits = []index.Hit{}
		}
		return writeJSON(cmd.OutOrStdout(), hits)
	}
	render.Hits(cmd.OutOrStdout(), hits)
	return nil
}

// --- delete subcommand ---

var indexDeleteCmd = &cobra.Command{
	Use:   "delete <doc>",
	Short: "Remove a document from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDelete,
}

func runIndexDelete(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

// --- shared helpers ---

func searchOptsFromFlags(cmd *cobra.Command, args []string) (index.SearchOptions, error) {
	level, _ := cmd.Flags().GetString("level")
	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.SearchOptions{
		Query:      strings.Join(args, " "),
		DocID:      docID,
		MaxResults: limit,
	}
	if level != "" {
		l, err := types.ParseHeadingLevel(strings.ToUpper(level))
		if err != nil {
			return opts, err
		}
		opts.Level = l
	}
	return opts, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func init() {
	indexCmd.PersistentFlags().Int("max-results", 50, "default maximum number of search results")
	bindFlag("max_results", indexCmd.PersistentFlags().Lookup("max-results"))

	indexListCmd.Flags().Bool("json", false, "output as JSON")

	indexGetCmd.Flags().Bool("tree", false, "render the outline as an indented tree")

	indexSearchCmd.Flags().String("level", "", "filter by heading level: H1, H2, H3, H4")
	indexSearchCmd.Flags().String("doc", "", "filter by document (base filename)")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	indexCmd.AddCommand(indexAddCmd)
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexGetCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexDeleteCmd)

	rootCmd.AddCommand(indexCmd)
}
