// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view decides what the catalogue screen shows and renders it.
//
// Arbitrate picks between the browse collection and the search results on
// every render; the rendering functions turn the chosen screen, or one
// record's detail, into text.
package view

import (
	"fmt"

	"github.com/pdiddy/dex-browser/internal/browse"
	"github.com/pdiddy/dex-browser/internal/search"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// Mode is the source of the displayed collection.
type Mode int

const (
	// ModeBrowse shows the orchestrator's current page.
	ModeBrowse Mode = iota
	// ModeSearchResults shows the current page of search matches.
	ModeSearchResults
	// ModeSearchEmpty shows nothing: the last search matched no record.
	ModeSearchEmpty
)

func (m Mode) String() string {
	switch m {
	case ModeSearchResults:
		return "search"
	case ModeSearchEmpty:
		return "search-empty"
	default:
		return "browse"
	}
}

// NavBinding names the component that next/previous act on.
type NavBinding int

const (
	NavBrowse NavBinding = iota
	NavSearch
)

// Nav is the navigation control state.
type Nav struct {
	Binding     NavBinding
	HasNext     bool
	HasPrevious bool
	Visible     bool
}

// Screen is everything the list screen needs for one render.
type Screen struct {
	Mode    Mode
	Heading string
	Records []types.RecordSummary
	Nav     Nav

	// Loading is set while the browse list or a search page is in flight.
	Loading bool

	// Pending is set while the displayed records are being enriched;
	// unenriched records are placeholders rather than degraded entries.
	Pending bool

	// Status is a non-blocking message, set when the last list fetch failed.
	Status string
}

// ExploreHeading is shown when no search is active.
const ExploreHeading = "Explore Pokémon"

// Arbitrate derives the screen from the two component snapshots.
func Arbitrate(b browse.State, s search.State) Screen {
	withResults := s.Executed && s.MatchCount() > 0
	empty := s.Executed && s.MatchCount() == 0

	sc := Screen{Loading: b.Loading || s.Searching}
	if b.Err != nil {
		sc.Status = fmt.Sprintf("Could not load the list: %v", b.Err)
	}

	switch {
	case withResults:
		sc.Mode = ModeSearchResults
		sc.Heading = fmt.Sprintf("Search results for '%s' (page %d of %d)",
			s.LastExecutedTerm, s.PageNumber(), s.PageCount())
		sc.Records = s.Results
		sc.Pending = s.Searching
		sc.Nav = Nav{Binding: NavSearch, HasNext: s.CanNext(), HasPrevious: s.CanPrevious()}
	case empty:
		sc.Mode = ModeSearchEmpty
		sc.Heading = fmt.Sprintf("No records found for %q", s.LastExecutedTerm)
		sc.Records = []types.RecordSummary{}
		sc.Nav = Nav{Binding: NavBrowse}
	default:
		sc.Mode = ModeBrowse
		sc.Heading = ExploreHeading
		sc.Records = b.Collection
		sc.Pending = b.Enriching
		sc.Nav = Nav{Binding: NavBrowse, HasNext: b.Cursor.HasForward(), HasPrevious: b.Cursor.HasBackward()}
	}
	if sc.Records == nil {
		sc.Records = []types.RecordSummary{}
	}
	sc.Nav.Visible = !empty && !sc.Loading
	return sc
}
