// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search filters the catalogue's name index by a search term and
// paginates the matches locally, enriching only the page on screen.
//
// The engine never touches the browse cursor: it reads the name index
// through IndexProvider and keeps its own page counter, so leaving search
// mode returns to the browse page exactly as it was.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/enrich"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// ErrSuperseded is returned when a newer search action replaced the one
// in flight; its results were discarded.
var ErrSuperseded = errors.New("search superseded by a newer request")

// IndexProvider supplies the full name index. *browse.Orchestrator
// implements it.
type IndexProvider interface {
	NameIndex() []types.SimpleRecord
}

// Enricher fetches detail for a page of matches. *enrich.Enricher
// implements it.
type Enricher interface {
	Enrich(ctx context.Context, records []types.SimpleRecord) []types.RecordSummary
}

// State is a consistent snapshot of the engine.
type State struct {
	// Term is the current input; it is only applied by Execute.
	Term string

	// LastExecutedTerm is the trimmed term of the last non-empty Execute.
	LastExecutedTerm string

	// Executed is set once a non-empty term has been executed and cleared
	// by executing an empty one.
	Executed bool

	// Searching is set while the current page is being enriched.
	Searching bool

	// Matches is the full, unpaginated match set in name index order.
	Matches []types.SimpleRecord

	// Page is the 0-based index of the page in Results.
	Page int

	// Results is the current page of matches.
	Results []types.RecordSummary

	PageSize int
	Batch    uint64
}

// MatchCount is the size of the full match set.
func (s State) MatchCount() int { return len(s.Matches) }

// PageCount is ceil(MatchCount / PageSize).
func (s State) PageCount() int {
	if s.PageSize <= 0 || len(s.Matches) == 0 {
		return 0
	}
	return (len(s.Matches) + s.PageSize - 1) / s.PageSize
}

// PageNumber is the 1-based number of the current page, or 0 when there
// are no matches.
func (s State) PageNumber() int {
	if len(s.Matches) == 0 {
		return 0
	}
	return s.Page + 1
}

// CanNext reports whether a later page exists.
func (s State) CanNext() bool { return s.Page+1 < s.PageCount() }

// CanPrevious reports whether an earlier page exists.
func (s State) CanPrevious() bool { return s.Page > 0 && len(s.Matches) > 0 }

// Engine runs searches over a name index.
type Engine struct {
	index    IndexProvider
	enricher Enricher
	logger   *zap.Logger

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// New returns an Engine paginating by pageSize.
func New(index IndexProvider, enricher Enricher, pageSize int, logger *zap.Logger) *Engine {
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		index:    index,
		enricher: enricher,
		logger:   logger.Named("search"),
		state:    inert("", pageSize, 0),
	}
}

func inert(term string, pageSize int, batch uint64) State {
	return State{
		Term:     term,
		Matches:  []types.SimpleRecord{},
		Results:  []types.RecordSummary{},
		PageSize: pageSize,
		Batch:    batch,
	}
}

// OnChange registers fn to receive every published state.
func (e *Engine) OnChange(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// SetTerm stores the input term without searching.
func (e *Engine) SetTerm(term string) {
	e.update(func(s *State) { s.Term = term })
}

// Execute runs the search for the current term.
//
// An empty or whitespace-only term resets the engine to its never-searched
// state. Otherwise every name containing the term (case-insensitively) is
// matched in index order, the page counter resets to the first page, and
// that page is enriched.
func (e *Engine) Execute(ctx context.Context) error {
	var (
		token   uint64
		matches []types.SimpleRecord
		slice   []types.SimpleRecord
		reset   bool
	)
	names := e.index.NameIndex()

	e.update(func(s *State) {
		term := strings.TrimSpace(s.Term)
		if term == "" {
			*s = inert(s.Term, s.PageSize, s.Batch+1)
			reset = true
			return
		}
		matches = Filter(names, term)
		s.Batch++
		token = s.Batch
		s.LastExecutedTerm = term
		s.Executed = true
		s.Matches = matches
		s.Page = 0
		slice = pageSlice(matches, 0, s.PageSize)
		s.Results = enrich.Placeholders(slice)
		s.Searching = len(matches) > 0
	})
	if reset || len(matches) == 0 {
		return nil
	}
	return e.enrichPage(ctx, token, slice)
}

// Next moves to the following page. It reports false without doing
// anything on the last page or before any search.
func (e *Engine) Next(ctx context.Context) (bool, error) {
	return e.move(ctx, func(s *State) int { return s.Page + 1 })
}

// Previous moves to the preceding page. It reports false without doing
// anything on the first page or before any search.
func (e *Engine) Previous(ctx context.Context) (bool, error) {
	return e.move(ctx, func(s *State) int { return s.Page - 1 })
}

// GoTo jumps to the 1-based page n. It reports false when n is out of
// range or already shown.
func (e *Engine) GoTo(ctx context.Context, n int) (bool, error) {
	return e.move(ctx, func(*State) int { return n - 1 })
}

func (e *Engine) move(ctx context.Context, targetOf func(*State) int) (bool, error) {
	var (
		token uint64
		slice []types.SimpleRecord
		moved bool
	)
	e.update(func(s *State) {
		if !s.Executed || len(s.Matches) == 0 {
			return
		}
		target := targetOf(s)
		if target == s.Page || target < 0 || target > s.PageCount()-1 {
			return
		}
		s.Batch++
		token = s.Batch
		s.Page = target
		slice = pageSlice(s.Matches, target, s.PageSize)
		s.Results = enrich.Placeholders(slice)
		s.Searching = true
		moved = true
	})
	if !moved {
		return false, nil
	}
	return true, e.enrichPage(ctx, token, slice)
}

// enrichPage enriches slice, the page selected under token, and publishes
// it if no newer action has started since.
func (e *Engine) enrichPage(ctx context.Context, token uint64, slice []types.SimpleRecord) error {
	results := e.enricher.Enrich(ctx, slice)
	if err := ctx.Err(); err != nil {
		e.updateIf(token, func(s *State) { s.Searching = false })
		return fmt.Errorf("enriching search page: %w", err)
	}
	if !e.updateIf(token, func(s *State) {
		s.Results = results
		s.Searching = false
	}) {
		e.logger.Debug("discarding superseded search page", zap.Uint64("batch", token))
		return ErrSuperseded
	}
	return nil
}

// Filter returns the records whose name contains term, ignoring case, in
// their original order.
func Filter(index []types.SimpleRecord, term string) []types.SimpleRecord {
	needle := strings.ToLower(term)
	out := []types.SimpleRecord{}
	for _, r := range index {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

func pageSlice(matches []types.SimpleRecord, page, size int) []types.SimpleRecord {
	start := page * size
	if start >= len(matches) {
		return nil
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end]
}

func (e *Engine) update(fn func(*State)) {
	e.mu.Lock()
	fn(&e.state)
	snap, listener := e.snapshotLocked(), e.onChange
	e.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
}

func (e *Engine) updateIf(token uint64, fn func(*State)) bool {
	e.mu.Lock()
	if e.state.Batch != token {
		e.mu.Unlock()
		return false
	}
	fn(&e.state)
	snap, listener := e.snapshotLocked(), e.onChange
	e.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
	return true
}

func (e *Engine) snapshotLocked() State {
	s := e.state
	s.Results = types.CloneSummaries(e.state.Results)
	return s
}
