// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse owns the paginated collection shown in browse mode: the
// current page of record summaries, the service cursors around it, and the
// full name index used by search.
//
// A page loads in two phases. The list response is published at once as
// placeholders, then every record is enriched in parallel and the page is
// replaced in one step when all detail requests have settled. Each load
// takes a batch token; results from a load that has since been superseded
// are dropped instead of overwriting the newer page.
package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/dex-browser/internal/enrich"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// ErrSuperseded is returned by Load when a newer load started before this
// one finished; its results were discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Source is the subset of the upstream client the Orchestrator needs.
type Source interface {
	enrich.DetailFetcher
	ListPage(ctx context.Context, url string) (types.ListPage, error)
	NameIndex(ctx context.Context, limit int) ([]types.SimpleRecord, error)
	FirstPageURL(limit int) string
}

// State is a consistent snapshot of the Orchestrator.
type State struct {
	// Collection is the current page in list order.
	Collection []types.RecordSummary

	// Loading is set while the list request is outstanding.
	Loading bool

	// Enriching is set between the placeholder page and the enriched page.
	Enriching bool

	Cursor types.CursorState

	// URL is the collection URL of the page in Collection.
	URL string

	// NameIndex is the full name index. It is set once and never modified;
	// callers must treat it as read only.
	NameIndex []types.SimpleRecord

	// Err is the last list fetch failure, cleared by the next successful load.
	// The previous Collection stays in place when it is set.
	Err error

	// Batch is the token of the most recent load.
	Batch uint64
}

// Orchestrator loads pages of the collection.
type Orchestrator struct {
	src      Source
	enricher *enrich.Enricher
	logger   *zap.Logger
	pageSize int
	indexMax int

	mu             sync.Mutex
	state          State
	indexRequested bool
	onChange       func(State)
}

// New returns an Orchestrator reading from src.
func New(src Source, cfg types.CatalogConfig, logger *zap.Logger) *Orchestrator {
	cfg = cfg.WithDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		src:      src,
		enricher: enrich.New(src, cfg.MaxConcurrency, logger),
		logger:   logger.Named("browse"),
		pageSize: cfg.PageSize,
		indexMax: cfg.NameIndexLimit,
		state: State{
			Collection: []types.RecordSummary{},
		},
	}
}

// OnChange registers fn to receive every published state. fn runs on the
// goroutine that made the change, outside the Orchestrator's lock.
func (o *Orchestrator) OnChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onChange = fn
}

// PageSize is the number of records per page.
func (o *Orchestrator) PageSize() int { return o.pageSize }

// FirstPageURL is the collection URL of the first page.
func (o *Orchestrator) FirstPageURL() string {
	return o.src.FirstPageURL(o.pageSize)
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// NameIndex returns the full name index, or nil before it has loaded.
func (o *Orchestrator) NameIndex() []types.SimpleRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.NameIndex
}

// Mount loads the name index and the first page concurrently, as a view
// does when it is first shown. The first page's error is returned; a name
// index failure is only logged.
func (o *Orchestrator) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_ = o.LoadNameIndex(ctx)
		return nil
	})
	g.Go(func() error {
		return o.Load(ctx, o.FirstPageURL())
	})
	return g.Wait()
}

// Load fetches the page at url and publishes it in two phases.
//
// A list failure clears the loading flag, records the error in State.Err,
// and leaves the previous page displayed. A per-record detail failure only
// degrades that record.
func (o *Orchestrator) Load(ctx context.Context, url string) error {
	token := o.begin()

	page, err := o.src.ListPage(ctx, url)
	if err != nil {
		o.logger.Error("list fetch failed", zap.String("url", url), zap.Error(err))
		o.updateIf(token, func(s *State) {
			s.Loading = false
			s.Enriching = false
			s.Err = err
		})
		return err
	}

	placeholders := enrich.Placeholders(page.Results)
	if !o.updateIf(token, func(s *State) {
		s.Collection = placeholders
		s.Cursor = types.CursorState{Forward: page.Next, Backward: page.Previous}
		s.URL = url
		s.Loading = false
		s.Enriching = true
		s.Err = nil
	}) {
		o.logger.Debug("discarding superseded list page", zap.Uint64("batch", token))
		return ErrSuperseded
	}

	enriched := o.enricher.Enrich(ctx, page.Results)
	if ctxErr := ctx.Err(); ctxErr != nil {
		o.updateIf(token, func(s *State) { s.Enriching = false })
		return fmt.Errorf("enriching page: %w", ctxErr)
	}

	if !o.updateIf(token, func(s *State) {
		s.Collection = enriched
		s.Enriching = false
	}) {
		o.logger.Debug("discarding superseded enrichment", zap.Uint64("batch", token))
		return ErrSuperseded
	}
	return nil
}

// Forward loads the next page. It reports false without doing anything
// when the service gave no forward cursor.
func (o *Orchestrator) Forward(ctx context.Context) (bool, error) {
	url := o.Snapshot().Cursor.Forward
	if url == "" {
		return false, nil
	}
	return true, o.Load(ctx, url)
}

// Backward loads the previous page. It reports false without doing
// anything when the service gave no backward cursor.
func (o *Orchestrator) Backward(ctx context.Context) (bool, error) {
	url := o.Snapshot().Cursor.Backward
	if url == "" {
		return false, nil
	}
	return true, o.Load(ctx, url)
}

// LoadNameIndex fetches the full name index. Only the first call issues a
// request; the index is held for the Orchestrator's lifetime.
func (o *Orchestrator) LoadNameIndex(ctx context.Context) error {
	o.mu.Lock()
	if o.indexRequested {
		o.mu.Unlock()
		return nil
	}
	o.indexRequested = true
	o.mu.Unlock()

	names, err := o.src.NameIndex(ctx, o.indexMax)
	if err != nil {
		o.logger.Error("name index fetch failed", zap.Error(err))
		return err
	}
	o.logger.Info("name index loaded", zap.Int("records", len(names)))
	o.update(func(s *State) { s.NameIndex = names })
	return nil
}

// begin starts a new load and returns its token.
func (o *Orchestrator) begin() uint64 {
	var token uint64
	o.update(func(s *State) {
		s.Batch++
		s.Loading = true
		token = s.Batch
	})
	return token
}

// update applies fn under the lock and publishes the result.
func (o *Orchestrator) update(fn func(*State)) {
	o.mu.Lock()
	fn(&o.state)
	snap, listener := o.snapshotLocked(), o.onChange
	o.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
}

// updateIf applies fn only when token is still the latest batch.
func (o *Orchestrator) updateIf(token uint64, fn func(*State)) bool {
	o.mu.Lock()
	if o.state.Batch != token {
		o.mu.Unlock()
		return false
	}
	fn(&o.state)
	snap, listener := o.snapshotLocked(), o.onChange
	o.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
	return true
}

func (o *Orchestrator) snapshotLocked() State {
	s := o.state
	s.Collection = types.CloneSummaries(o.state.Collection)
	return s
}
