// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/browse"
	"github.com/pdiddy/dex-browser/internal/detail"
	"github.com/pdiddy/dex-browser/internal/enrich"
	"github.com/pdiddy/dex-browser/internal/search"
	"github.com/pdiddy/dex-browser/internal/source"
	"github.com/pdiddy/dex-browser/internal/view"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// catalog wires the three stateful components to one upstream client.
type catalog struct {
	cfg    types.CatalogConfig
	src    *source.Client
	browse *browse.Orchestrator
	search *search.Engine
	detail *detail.Composer
}

func newCatalog(v *viper.Viper, logger *zap.Logger) (*catalog, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("base_url", cfg.BaseURL),
		zap.Int("page_size", cfg.PageSize),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("max_concurrency", cfg.MaxConcurrency))

	src := source.New(cfg, logger)
	orch := browse.New(src, cfg, logger)
	return &catalog{
		cfg:    cfg,
		src:    src,
		browse: orch,
		search: search.New(orch, enrich.New(src, cfg.MaxConcurrency, logger), cfg.PageSize, logger),
		detail: detail.New(src, logger),
	}, nil
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("yaml", false, "output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func outputFormat(cmd *cobra.Command) (view.Format, error) {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON && asYAML:
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return view.FormatJSON, nil
	case asYAML:
		return view.FormatYAML, nil
	default:
		return view.FormatText, nil
	}
}
