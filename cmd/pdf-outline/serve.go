// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-outline/internal/api"
	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve outline extraction and the index over HTTP",
	Long: `Serve starts the HTTP API:

  GET    /health
  POST   /api/outline?filename=<name>.pdf   (PDF as request body)
  GET    /api/documents
  GET    /api/documents/{docID}
  DELETE /api/documents/{docID}
  GET    /api/search?q=&level=&doc=&limit=

Uploaded outlines are recorded in the index unless --no-index is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	noIndex, _ := cmd.Flags().GetBool("no-index")

	ext, err := newExtractor(extractionConfig())
	if err != nil {
		return err
	}

	var store *index.Store
	if !noIndex {
		store, err = openIndex()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	cfg := types.ServerConfig{
		Addr:           viper.GetString("addr"),
		MaxUploadBytes: viper.GetInt64("max_upload_bytes"),
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(ext, store, logger, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "index", store != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("addr", ":8090", "listen address")
	serveCmd.Flags().Int64("max-upload-bytes", 50<<20, "maximum PDF upload size in bytes")
	serveCmd.Flags().Bool("no-index", false, "do not open the index; document endpoints answer 503")
	bindFlag("addr", serveCmd.Flags().Lookup("addr"))
	bindFlag("max_upload_bytes", serveCmd.Flags().Lookup("max-upload-bytes"))

	rootCmd.AddCommand(serveCmd)
}
