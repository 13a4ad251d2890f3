// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/dex-browser/internal/enrich"
	"github.com/pdiddy/dex-browser/internal/source"
	"github.com/pdiddy/dex-browser/internal/source/sourcetest"
	"github.com/pdiddy/dex-browser/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticIndex []types.SimpleRecord

func (s staticIndex) NameIndex() []types.SimpleRecord { return s }

// fakeEnricher marks every record enriched and records each call.
type fakeEnricher struct {
	mu    sync.Mutex
	calls [][]string
	block map[string]chan struct{} // first name of a slice → gate
}

func (f *fakeEnricher) Enrich(_ context.Context, recs []types.SimpleRecord) []types.RecordSummary {
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Name
	}
	f.mu.Lock()
	f.calls = append(f.calls, names)
	var gate chan struct{}
	if len(names) > 0 {
		gate = f.block[names[0]]
	}
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	out := make([]types.RecordSummary, len(recs))
	for i, r := range recs {
		out[i] = types.NewEnriched(r.Name, i+1, []string{"normal"}, "img", r.URL)
	}
	return out
}

func (f *fakeEnricher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// numberedIndex builds n records named prefix-01, prefix-02, ...
func numberedIndex(prefix string, n int) staticIndex {
	out := make(staticIndex, n)
	for i := range out {
		out[i] = types.SimpleRecord{
			Name: fmt.Sprintf("%s-%02d", prefix, i+1),
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i+1),
		}
	}
	return out
}

func resultNames(s State) []string {
	out := make([]string, len(s.Results))
	for i, r := range s.Results {
		out[i] = r.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	index := staticIndex{
		{Name: "pikachu"}, {Name: "raichu"}, {Name: "pichu"}, {Name: "bulbasaur"}, {Name: "Chuffy"},
	}
	tests := []struct {
		term string
		want []string
	}{
		{"chu", []string{"pikachu", "raichu", "pichu", "Chuffy"}},
		{"CHU", []string{"pikachu", "raichu", "pichu", "Chuffy"}},
		{"pi", []string{"pikachu", "pichu"}},
		{"saur", []string{"bulbasaur"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(index, tt.term)
			names := make([]string, len(got))
			for i, r := range got {
				names[i] = r.Name
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
		})
	}
}

func TestExecute_EmptyTermIsInert(t *testing.T) {
	f := &fakeEnricher{}
	e := New(numberedIndex("mon", 5), f, 12, nil)
	ctx := context.Background()

	for _, term := range []string{"", "   ", "\t\n"} {
		e.SetTerm(term)
		require.NoError(t, e.Execute(ctx))
		s := e.Snapshot()
		assert.False(t, s.Executed, "term %q", term)
		assert.Empty(t, s.Results)
		assert.Zero(t, s.MatchCount())
		assert.Empty(t, s.LastExecutedTerm)
	}
	assert.Zero(t, f.callCount())
}

func TestExecute_EmptyTermResetsPriorSearch(t *testing.T) {
	e := New(numberedIndex("mon", 30), &fakeEnricher{}, 12, nil)
	ctx := context.Background()

	e.SetTerm("mon")
	require.NoError(t, e.Execute(ctx))
	_, err := e.Next(ctx)
	require.NoError(t, err)
	require.True(t, e.Snapshot().Executed)

	e.SetTerm("  ")
	require.NoError(t, e.Execute(ctx))
	s := e.Snapshot()
	assert.False(t, s.Executed)
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Matches)
	assert.Zero(t, s.Page)
	assert.Zero(t, s.PageNumber())
	assert.False(t, s.CanNext())
	assert.False(t, s.CanPrevious())
}

func TestExecute_ZeroMatches(t *testing.T) {
	f := &fakeEnricher{}
	e := New(numberedIndex("mon", 5), f, 12, nil)

	e.SetTerm("missingno")
	require.NoError(t, e.Execute(context.Background()))

	s := e.Snapshot()
	assert.True(t, s.Executed)
	assert.Zero(t, s.MatchCount())
	assert.Empty(t, s.Results)
	assert.False(t, s.Searching)
	assert.Equal(t, "missingno", s.LastExecutedTerm)
	assert.Zero(t, s.PageCount())
	assert.Zero(t, f.callCount(), "nothing to enrich")
}

func TestExecute_EnrichesFirstPageOnly(t *testing.T) {
	f := &fakeEnricher{}
	e := New(numberedIndex("mon", 30), f, 12, nil)

	e.SetTerm("  MON ")
	require.NoError(t, e.Execute(context.Background()))

	s := e.Snapshot()
	assert.Equal(t, "MON", s.LastExecutedTerm)
	assert.Equal(t, 30, s.MatchCount())
	assert.Equal(t, 3, s.PageCount())
	assert.Equal(t, 1, s.PageNumber())
	require.Len(t, s.Results, 12)
	assert.Equal(t, "mon-01", s.Results[0].Name)
	assert.Equal(t, "mon-12", s.Results[11].Name)
	for _, r := range s.Results {
		assert.True(t, r.Enriched)
	}
	require.Equal(t, 1, f.callCount())
	assert.Len(t, f.calls[0], 12)
}

func TestPagination(t *testing.T) {
	e := New(numberedIndex("mon", 30), &fakeEnricher{}, 12, nil)
	ctx := context.Background()

	e.SetTerm("mon")
	require.NoError(t, e.Execute(ctx))

	moved, err := e.Previous(ctx)
	require.NoError(t, err)
	assert.False(t, moved, "previous on page 1 is a no-op")
	assert.Equal(t, 1, e.Snapshot().PageNumber())

	moved, err = e.Next(ctx)
	require.NoError(t, err)
	assert.True(t, moved)
	s := e.Snapshot()
	assert.Equal(t, 2, s.PageNumber())
	assert.Equal(t, "mon-13", s.Results[0].Name)
	assert.True(t, s.CanNext())
	assert.True(t, s.CanPrevious())

	moved, err = e.Next(ctx)
	require.NoError(t, err)
	assert.True(t, moved)
	s = e.Snapshot()
	assert.Equal(t, 3, s.PageNumber())
	assert.Len(t, s.Results, 6)
	assert.False(t, s.CanNext())

	batch := s.Batch
	moved, err = e.Next(ctx)
	require.NoError(t, err)
	assert.False(t, moved, "next on last page is a no-op")
	assert.Equal(t, batch, e.Snapshot().Batch)

	moved, err = e.Previous(ctx)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"mon-13", "mon-14"}, resultNames(e.Snapshot())[:2])
}

func TestNavigationBeforeSearchIsNoOp(t *testing.T) {
	f := &fakeEnricher{}
	e := New(numberedIndex("mon", 30), f, 12, nil)

	moved, err := e.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, moved)
	moved, err = e.Previous(context.Background())
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Zero(t, f.callCount())
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		matches, pageSize, want int
	}{
		{0, 12, 0}, {1, 12, 1}, {11, 12, 1}, {12, 12, 1}, {13, 12, 2}, {24, 12, 2}, {25, 12, 3}, {7, 3, 3},
	}
	for _, tt := range tests {
		s := State{Matches: make([]types.SimpleRecord, tt.matches), PageSize: tt.pageSize}
		assert.Equal(t, tt.want, s.PageCount(), "K=%d P=%d", tt.matches, tt.pageSize)
	}
}

func TestSetTermDoesNotRecompute(t *testing.T) {
	e := New(numberedIndex("mon", 30), &fakeEnricher{}, 12, nil)
	e.SetTerm("mon-0")
	require.NoError(t, e.Execute(context.Background()))
	before := e.Snapshot()

	e.SetTerm("mon-1")
	after := e.Snapshot()
	assert.Equal(t, "mon-1", after.Term)
	assert.Equal(t, before.MatchCount(), after.MatchCount())
	assert.Equal(t, "mon-0", after.LastExecutedTerm)
	assert.Equal(t, resultNames(before), resultNames(after))
}

func TestExecute_StaleResultsDiscarded(t *testing.T) {
	index := staticIndex{
		{Name: "abra", URL: "u/63/"}, {Name: "kadabra", URL: "u/64/"}, {Name: "zubat", URL: "u/41/"},
	}
	gate := make(chan struct{})
	f := &fakeEnricher{block: map[string]chan struct{}{"abra": gate}}
	e := New(index, f, 12, nil)
	ctx := context.Background()

	started := make(chan State, 16)
	e.OnChange(func(s State) {
		if s.Searching {
			select {
			case started <- s:
			default:
			}
		}
	})

	e.SetTerm("abra")
	first := make(chan error, 1)
	go func() { first <- e.Execute(ctx) }()
	<-started

	e.SetTerm("zu")
	require.NoError(t, e.Execute(ctx))
	assert.Equal(t, []string{"zubat"}, resultNames(e.Snapshot()))

	close(gate)
	assert.ErrorIs(t, <-first, ErrSuperseded)

	s := e.Snapshot()
	assert.Equal(t, []string{"zubat"}, resultNames(s))
	assert.Equal(t, "zu", s.LastExecutedTerm)
	assert.False(t, s.Searching)
}

func TestExecute_WithUpstreamDegradesFailures(t *testing.T) {
	srv := sourcetest.NewServer(t, sourcetest.Starters()...)
	srv.FailRecord(2, http.StatusInternalServerError)

	cfg := types.DefaultCatalogConfig()
	cfg.BaseURL = srv.BaseURL()
	src := source.New(cfg, nil)
	t.Cleanup(src.HTTP.CloseIdleConnections)

	names, err := src.NameIndex(context.Background(), cfg.NameIndexLimit)
	require.NoError(t, err)

	e := New(staticIndex(names), enrich.New(src, 0, nil), cfg.PageSize, nil)
	e.SetTerm("saur")
	require.NoError(t, e.Execute(context.Background()))

	s := e.Snapshot()
	require.Len(t, s.Results, 2)
	assert.Equal(t, "bulbasaur", s.Results[0].Name)
	assert.True(t, s.Results[0].Enriched)
	assert.Equal(t, "2", s.Results[1].Name)
	assert.False(t, s.Results[1].Enriched)
	assert.Empty(t, s.Results[1].Types)
}

func TestGoTo(t *testing.T) {
	f := &fakeEnricher{}
	e := New(numberedIndex("mon", 30), f, 12, nil)
	ctx := context.Background()
	e.SetTerm("mon")
	require.NoError(t, e.Execute(ctx))

	moved, err := e.GoTo(ctx, 3)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 3, e.Snapshot().PageNumber())
	assert.Equal(t, "mon-25", e.Snapshot().Results[0].Name)

	for _, n := range []int{0, 3, 4, -1} {
		moved, err = e.GoTo(ctx, n)
		require.NoError(t, err)
		assert.False(t, moved, "page %d", n)
	}
	assert.Equal(t, 2, f.callCount(), "first page and page 3 only")
}
