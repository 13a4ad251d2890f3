// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source is a thin read-only client for the upstream creature-data
// API. It maps the four endpoints the catalogue uses (collection page,
// record detail, species, full name index) to Go values and holds no state
// between calls.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/httputil"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// ErrRecordNotFound is returned by Record when the upstream answers 404.
var ErrRecordNotFound = errors.New("record not found")

// Client queries the upstream API.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Logger    *zap.Logger
}

// New builds a Client from cfg. A nil logger is replaced with a no-op one.
func New(cfg types.CatalogConfig, logger *zap.Logger) *Client {
	cfg = cfg.WithDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}
}

// FirstPageURL returns the collection URL for the first page of size limit.
func (c *Client) FirstPageURL(limit int) string {
	return fmt.Sprintf("%s/pokemon?limit=%d", c.BaseURL, limit)
}

// PageURL returns the collection URL for a page starting at offset.
func (c *Client) PageURL(limit, offset int) string {
	if offset <= 0 {
		return c.FirstPageURL(limit)
	}
	return fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.BaseURL, limit, offset)
}

// RecordURL returns the detail URL for id.
func (c *Client) RecordURL(id string) string {
	return fmt.Sprintf("%s/pokemon/%s", c.BaseURL, id)
}

// ListPage fetches one page of the collection endpoint at url. The cursor
// URLs are returned exactly as the service sent them.
func (c *Client) ListPage(ctx context.Context, url string) (types.ListPage, error) {
	var lr listResponse
	if err := c.get(ctx, url, &lr); err != nil {
		return types.ListPage{}, fmt.Errorf("fetching list page: %w", err)
	}
	page := types.ListPage{
		Results: make([]types.SimpleRecord, 0, len(lr.Results)),
	}
	for _, r := range lr.Results {
		page.Results = append(page.Results, types.SimpleRecord{Name: r.Name, URL: r.URL})
	}
	if lr.Next != nil {
		page.Next = *lr.Next
	}
	if lr.Previous != nil {
		page.Previous = *lr.Previous
	}
	return page, nil
}

// NameIndex fetches every record name in one request of size limit.
func (c *Client) NameIndex(ctx context.Context, limit int) ([]types.SimpleRecord, error) {
	page, err := c.ListPage(ctx, c.FirstPageURL(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching name index: %w", err)
	}
	c.Logger.Debug("name index fetched", zap.Int("records", len(page.Results)))
	return page.Results, nil
}

// Record fetches the detail payload for id (numeric id or name).
func (c *Client) Record(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, fmt.Errorf("empty record identifier")
	}
	var rec Record
	if err := c.get(ctx, c.RecordURL(id), &rec); err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && se.NotFound() {
			return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		return Record{}, fmt.Errorf("fetching record %s: %w", id, err)
	}
	return rec, nil
}

// Species fetches the species payload at url, as referenced by Record.
func (c *Client) Species(ctx context.Context, url string) (Species, error) {
	if url == "" {
		return Species{}, fmt.Errorf("record has no species URL")
	}
	var sp Species
	if err := c.get(ctx, url, &sp); err != nil {
		return Species{}, fmt.Errorf("fetching species data: %w", err)
	}
	return sp, nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	c.Logger.Debug("GET", zap.String("url", url))
	return httputil.GetJSON(ctx, c.HTTP, url, c.UserAgent, v)
}
