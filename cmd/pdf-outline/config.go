// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/internal/outline"
	"github.com/pdiddy/pdf-outline/internal/pdftext"
	"github.com/pdiddy/pdf-outline/internal/rules"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

// bindFlag ties a viper key to a flag so that the flag, the
// PDF_OUTLINE_<KEY> environment variable and the config file all set it.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		AssetsDir:         viper.GetString("assets_dir"),
		Backend:           types.Backend(viper.GetString("backend")),
		FallbackPdftotext: viper.GetBool("fallback_pdftotext"),
		RulesFile:         viper.GetString("rules_file"),
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level:  viper.GetString("log_level"),
		Format: viper.GetString("log_format"),
	}
}

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		Dir:        viper.GetString("index_dir"),
		MaxResults: viper.GetInt("max_results"),
	}
}

// newExtractor loads the rules table and the text source named by the
// configuration.
func newExtractor(cfg types.ExtractionConfig) (*outline.Extractor, error) {
	r, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	src, err := pdftext.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("extractor ready", "backend", src.Name(), "rules", cfg.RulesFile)
	return outline.NewExtractor(src, r, logger), nil
}

func openIndex() (*index.Store, error) {
	return index.NewStore(indexConfig())
}
