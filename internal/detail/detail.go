// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detail composes the full display model of one record from its
// primary record and its species record.
package detail

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/derive"
	"github.com/pdiddy/dex-browser/internal/source"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// descriptionLanguage selects the flavour text and genus entries.
const descriptionLanguage = "en"

// ErrSuperseded is returned by Load when a load for another identifier
// started before this one finished.
var ErrSuperseded = errors.New("detail load superseded by a newer request")

// Source fetches the two payloads a detail is built from.
// *source.Client implements it.
type Source interface {
	Record(ctx context.Context, id string) (source.Record, error)
	Species(ctx context.Context, url string) (source.Species, error)
}

// State is a snapshot of the composer.
type State struct {
	// ID is the identifier of the most recent Load.
	ID string

	// Detail is nil until the primary record has arrived, and nil again
	// if either fetch failed.
	Detail *types.RecordDetail

	// Loading is set from the start of Load until both fetches settle.
	Loading bool

	// Err is the message of the failure that stopped the last load.
	Err string

	Token uint64
}

// Composer loads one record at a time. Each Load replaces the previous one.
type Composer struct {
	src    Source
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// New returns a Composer reading from src.
func New(src Source, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{src: src, logger: logger.Named("detail")}
}

// OnChange registers fn to receive every published state.
func (c *Composer) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a copy of the current state.
func (c *Composer) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load fetches the record id and then its species, merging both into one
// RecordDetail. The partial detail is published as soon as the primary
// record is in. A failure of either fetch clears the detail and sets Err;
// nothing is retried. The returned error is the one recorded in the state,
// or ErrSuperseded when a later Load took over.
func (c *Composer) Load(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	var token uint64
	c.update(func(s *State) {
		s.Token++
		token = s.Token
		*s = State{ID: id, Loading: true, Token: token}
	})

	rec, err := c.src.Record(ctx, id)
	if err != nil {
		return c.fail(token, id, err)
	}

	d := fromRecord(rec)
	if !c.updateIf(token, func(s *State) { s.Detail = &d }) {
		return ErrSuperseded
	}

	sp, err := c.src.Species(ctx, rec.Species.URL)
	if err != nil {
		return c.fail(token, id, err)
	}

	full := d.Clone()
	applySpecies(&full, sp)
	if !c.updateIf(token, func(s *State) {
		s.Detail = &full
		s.Loading = false
	}) {
		return ErrSuperseded
	}
	return nil
}

func (c *Composer) fail(token uint64, id string, err error) error {
	if !c.updateIf(token, func(s *State) {
		s.Detail = nil
		s.Loading = false
		s.Err = err.Error()
	}) {
		return ErrSuperseded
	}
	c.logger.Warn("detail load failed", zap.String("id", id), zap.Error(err))
	return err
}

// Compose builds a full RecordDetail from already fetched payloads.
func Compose(rec source.Record, sp source.Species) types.RecordDetail {
	d := fromRecord(rec)
	applySpecies(&d, sp)
	return d
}

func fromRecord(rec source.Record) types.RecordDetail {
	stats := make([]types.StatEntry, 0, len(rec.Stats))
	for _, s := range rec.Stats {
		stats = append(stats, types.StatEntry{Name: s.Stat.Name, Value: s.BaseStat})
	}
	abilities := make([]string, 0, len(rec.Abilities))
	for _, a := range rec.Abilities {
		abilities = append(abilities, a.Ability.Name)
	}
	typeNames := rec.TypeNames()
	return types.RecordDetail{
		ID:             rec.ID,
		Name:           rec.Name,
		Height:         rec.Height,
		Weight:         rec.Weight,
		BaseExperience: rec.BaseExperience,
		ImageURL:       rec.ImageURL(),
		Types:          typeNames,
		Stats:          stats,
		Abilities:      abilities,
		Weaknesses:     derive.Weaknesses(typeNames),
		SpeciesURL:     rec.Species.URL,
	}
}

func applySpecies(d *types.RecordDetail, sp source.Species) {
	if text, ok := sp.FlavorTextFor(descriptionLanguage); ok {
		d.Description = derive.CleanDescription(text)
	}
	if genus, ok := sp.GenusFor(descriptionLanguage); ok {
		d.Category = derive.CleanCategory(genus)
	}
	d.Gender = derive.GenderLabel(sp.GenderRate)
}

// IDFromRoute extracts the record identifier from a detail route or
// resource URL such as "/pokemon/25" or ".../pokemon/25/".
func IDFromRoute(route string) string {
	seg := derive.SegmentFromURL(strings.TrimSpace(route))
	if n, err := strconv.Atoi(seg); err == nil {
		return strconv.Itoa(n)
	}
	return strings.ToLower(seg)
}

func (c *Composer) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snap, listener := c.snapshotLocked(), c.onChange
	c.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
}

func (c *Composer) updateIf(token uint64, fn func(*State)) bool {
	c.mu.Lock()
	if c.state.Token != token {
		c.mu.Unlock()
		return false
	}
	fn(&c.state)
	snap, listener := c.snapshotLocked(), c.onChange
	c.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
	return true
}

func (c *Composer) snapshotLocked() State {
	s := c.state
	if s.Detail != nil {
		d := s.Detail.Clone()
		s.Detail = &d
	}
	return s
}
