package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dex-browser/internal/source/sourcetest"
	"github.com/pdiddy/dex-browser/internal/view"
	"github.com/pdiddy/dex-browser/pkg/types"
)

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultCatalogConfig(), cfg)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DEX_BROWSER_BASE_URL", "http://localhost:9999/api")
	t.Setenv("DEX_BROWSER_PAGE_SIZE", "20")
	t.Setenv("DEX_BROWSER_TIMEOUT", "5s")
	t.Setenv("DEX_BROWSER_MAX_CONCURRENCY", "4")

	v := viper.New()
	v.SetEnvPrefix("DEX_BROWSER")
	v.AutomaticEnv()
	setConfigDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api", cfg.BaseURL)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, types.DefaultNameIndexLimit, cfg.NameIndexLimit)
	assert.Equal(t, types.DefaultUserAgent, cfg.UserAgent)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)
	v.Set("page_size", 0)
	v.Set("max_concurrency", -3)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultPageSize, cfg.PageSize)
	assert.Zero(t, cfg.MaxConcurrency)
}

// execute runs the root command against srv and returns its output.
func execute(t *testing.T, srv *sourcetest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--base-url", srv.BaseURL(), "--log-file", t.TempDir()+"/dex.log"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)

	t.Run("list json", func(t *testing.T) {
		out, err := execute(t, srv, "list", "--json")
		require.NoError(t, err)
		var page view.ListOutput
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		require.Len(t, page.Records, 4)
		assert.Equal(t, "charmander", page.Records[2].Name)
		assert.True(t, page.Records[2].Enriched)
		assert.Equal(t, []string{"fire"}, page.Records[2].Types)
	})

	t.Run("show yaml", func(t *testing.T) {
		out, err := execute(t, srv, "show", "4", "--yaml")
		require.NoError(t, err)
		var d types.RecordDetail
		require.NoError(t, yaml.Unmarshal([]byte(out), &d))
		assert.Equal(t, "charmander", d.Name)
		assert.Equal(t, "Lizard", d.Category)
		assert.Equal(t, []string{"water", "ground", "rock"}, d.Weaknesses)
	})

	t.Run("show missing", func(t *testing.T) {
		_, err := execute(t, srv, "show", "9999")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record not found")
	})

	t.Run("search text", func(t *testing.T) {
		out, err := execute(t, srv, "search", "saur")
		require.NoError(t, err)
		assert.Contains(t, out, "Search results for 'saur' (page 1 of 1)")
		assert.Contains(t, out, "Bulbasaur")
		assert.Contains(t, out, "Ivysaur")
		assert.NotContains(t, out, "Charmander")
	})

	t.Run("search page out of range", func(t *testing.T) {
		_, err := execute(t, srv, "search", "saur", "--page", "3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, srv, "version")
		require.NoError(t, err)
		assert.Equal(t, "dex-browser dev\n", out)
	})
}
