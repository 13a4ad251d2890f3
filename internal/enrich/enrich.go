// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches per-record detail for a slice of name/URL pairs
// in parallel and joins the results by position.
package enrich

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/dex-browser/internal/derive"
	"github.com/pdiddy/dex-browser/internal/source"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// DetailFetcher fetches a record detail payload by id. *source.Client
// implements it.
type DetailFetcher interface {
	Record(ctx context.Context, id string) (source.Record, error)
}

// Enricher turns SimpleRecords into RecordSummaries.
type Enricher struct {
	Source DetailFetcher
	Logger *zap.Logger

	// Limit bounds in-flight requests. Zero dispatches every request at once.
	Limit int
}

// New returns an Enricher over src.
func New(src DetailFetcher, limit int, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{Source: src, Logger: logger, Limit: limit}
}

// Placeholders returns unenriched summaries for records, with ids parsed
// from their URLs.
func Placeholders(records []types.SimpleRecord) []types.RecordSummary {
	out := make([]types.RecordSummary, len(records))
	for i, r := range records {
		id, _ := derive.ParseID(r.URL)
		out[i] = types.NewPlaceholder(r.Name, id, r.URL)
	}
	return out
}

// Enrich fetches detail for every record concurrently. The result has the
// same length and order as records; slot i always describes records[i]
// whatever order the responses arrive in. A failed fetch yields a degraded
// entry for that slot and never affects its siblings.
func (e *Enricher) Enrich(ctx context.Context, records []types.SimpleRecord) []types.RecordSummary {
	out := make([]types.RecordSummary, len(records))

	var g errgroup.Group
	if e.Limit > 0 {
		g.SetLimit(e.Limit)
	}
	for i, r := range records {
		g.Go(func() error {
			out[i] = e.one(ctx, r)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enricher) one(ctx context.Context, r types.SimpleRecord) types.RecordSummary {
	key := derive.SegmentFromURL(r.URL)
	rec, err := e.Source.Record(ctx, key)
	if err != nil {
		e.Logger.Warn("record detail unavailable, using placeholder",
			zap.String("url", r.URL), zap.Error(err))
		return Degraded(r)
	}
	return types.NewEnriched(rec.Name, rec.ID, rec.TypeNames(), rec.ImageURL(), r.URL)
}

// Degraded builds the stand-in summary for a record whose detail fetch
// failed: name taken from the URL, no types, no image.
func Degraded(r types.SimpleRecord) types.RecordSummary {
	name := derive.SegmentFromURL(r.URL)
	if name == "" {
		name = "Unknown"
	}
	id, _ := derive.ParseID(r.URL)
	return types.NewPlaceholder(name, id, r.URL)
}
