package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/dex-browser/pkg/types"
)

// setConfigDefaults registers every configuration key so that
// AutomaticEnv and Unmarshal see them even without a config file.
func setConfigDefaults(v *viper.Viper) {
	d := types.DefaultCatalogConfig()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("name_index_limit", d.NameIndexLimit)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("max_concurrency", d.MaxConcurrency)
}

// loadConfig reads the catalogue configuration from v.
func loadConfig(v *viper.Viper) (types.CatalogConfig, error) {
	var cfg types.CatalogConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.CatalogConfig{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}
