// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dex-browser/internal/httputil"
	"github.com/pdiddy/dex-browser/internal/source/sourcetest"
	"github.com/pdiddy/dex-browser/pkg/types"
)

func testClient(base string) *Client {
	cfg := types.DefaultCatalogConfig()
	cfg.BaseURL = base
	cfg.UserAgent = "test/0.1"
	return New(cfg, nil)
}

func TestURLs(t *testing.T) {
	c := testClient("https://api.example/v2/")
	assert.Equal(t, "https://api.example/v2/pokemon?limit=12", c.FirstPageURL(12))
	assert.Equal(t, "https://api.example/v2/pokemon?limit=12", c.PageURL(12, 0))
	assert.Equal(t, "https://api.example/v2/pokemon?limit=12&offset=24", c.PageURL(12, 24))
	assert.Equal(t, "https://api.example/v2/pokemon/25", c.RecordURL("25"))
}

func TestListPage(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	c := testClient(srv.BaseURL())

	first, err := c.ListPage(context.Background(), c.FirstPageURL(2))
	require.NoError(t, err)
	require.Len(t, first.Results, 2)
	assert.Equal(t, types.SimpleRecord{Name: "bulbasaur", URL: srv.RecordURL(1)}, first.Results[0])
	assert.Equal(t, "ivysaur", first.Results[1].Name)
	assert.NotEmpty(t, first.Next)
	assert.Empty(t, first.Previous, "null previous should map to empty")

	second, err := c.ListPage(context.Background(), first.Next)
	require.NoError(t, err)
	require.Len(t, second.Results, 2)
	assert.Equal(t, "charmander", second.Results[0].Name)
	assert.Empty(t, second.Next, "null next should map to empty")
	assert.NotEmpty(t, second.Previous)
}

func TestListPage_CursorVerbatim(t *testing.T) {
	next := "https://elsewhere.example/opaque?cursor=abc"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"next":%q,"previous":null,"results":[{"name":"a","url":"u/1/"}]}`, next)
	}))
	defer ts.Close()

	page, err := testClient(ts.URL).ListPage(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, next, page.Next)
}

func TestListPage_HTTPError(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	srv.FailList(http.StatusServiceUnavailable)
	c := testClient(srv.BaseURL())

	_, err := c.ListPage(context.Background(), c.FirstPageURL(12))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching list page")

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestNameIndex(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	c := testClient(srv.BaseURL())

	names, err := c.NameIndex(context.Background(), 2000)
	require.NoError(t, err)
	require.Len(t, names, 4)
	assert.Equal(t, "magnemite", names[3].Name)
}

func TestRecord(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	c := testClient(srv.BaseURL())

	rec, err := c.Record(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
	assert.Equal(t, "bulbasaur", rec.Name)
	assert.Equal(t, []string{"grass", "poison"}, rec.TypeNames())
	assert.Equal(t, "https://img.example/1.png", rec.ImageURL())
	assert.Equal(t, 7, rec.Height)
	assert.Equal(t, 69, rec.Weight)
	require.Len(t, rec.Stats, 6)
	assert.Equal(t, "hp", rec.Stats[0].Stat.Name)
	assert.Equal(t, 45, rec.Stats[0].BaseStat)
	require.Len(t, rec.Abilities, 2)
	assert.Equal(t, "overgrow", rec.Abilities[0].Ability.Name)
	assert.Equal(t, srv.URL+"/pokemon-species/1/", rec.Species.URL)
}

func TestRecord_NullSprite(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	rec, err := testClient(srv.BaseURL()).Record(context.Background(), "81")
	require.NoError(t, err)
	assert.Equal(t, "", rec.ImageURL())
}

func TestRecord_Errors(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	srv.FailRecord(4, http.StatusInternalServerError)
	c := testClient(srv.BaseURL())

	_, err := c.Record(context.Background(), "999")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = c.Record(context.Background(), "4")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
	assert.Contains(t, err.Error(), "fetching record 4")

	_, err = c.Record(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSpecies(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	c := testClient(srv.BaseURL())

	sp, err := c.Species(context.Background(), srv.URL+"/pokemon-species/1/")
	require.NoError(t, err)
	assert.Equal(t, 1, sp.GenderRate)

	text, ok := sp.FlavorTextFor("en")
	require.True(t, ok)
	assert.Contains(t, text, "strange seed")

	genus, ok := sp.GenusFor("en")
	require.True(t, ok)
	assert.Equal(t, "Seed Pokémon", genus)

	_, ok = sp.GenusFor("de")
	assert.False(t, ok)
}

func TestSpecies_Errors(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	srv.FailSpecies(1, http.StatusBadGateway)
	c := testClient(srv.BaseURL())

	_, err := c.Species(context.Background(), srv.URL+"/pokemon-species/1/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching species data")

	_, err = c.Species(context.Background(), "")
	assert.Error(t, err)
}
