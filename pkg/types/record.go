// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the dex-browser catalogue:
// the records returned by the upstream creature-data API, the display models
// built from them, and the configuration consumed by each component.
package types

// SimpleRecord is a name/URL pair as listed by the paginated collection
// endpoint and by the full name index.
type SimpleRecord struct {
	// Name is the record name in the upstream casing (lowercase, hyphenated).
	Name string `json:"name" yaml:"name"`

	// URL is the absolute detail resource URL, e.g.
	// "https://pokeapi.co/api/v2/pokemon/4/".
	URL string `json:"url" yaml:"url"`
}

// ListPage is one page of the paginated collection endpoint. Next and
// Previous are the service-provided cursor URLs; an empty string means the
// service reported no page in that direction.
type ListPage struct {
	Results  []SimpleRecord `json:"results" yaml:"results"`
	Next     string         `json:"next,omitempty" yaml:"next,omitempty"`
	Previous string         `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// CursorState holds the forward and backward cursor URLs of the page
// currently displayed. Both are copied verbatim from the last list response.
type CursorState struct {
	Forward  string `json:"forward,omitempty" yaml:"forward,omitempty"`
	Backward string `json:"backward,omitempty" yaml:"backward,omitempty"`
}

// HasForward reports whether a next page exists.
func (c CursorState) HasForward() bool { return c.Forward != "" }

// HasBackward reports whether a previous page exists.
func (c CursorState) HasBackward() bool { return c.Backward != "" }

// RecordSummary is one card in the grid. Build it with NewPlaceholder or
// NewEnriched so that a placeholder never carries type tags or an image.
type RecordSummary struct {
	Name     string   `json:"name" yaml:"name"`
	ID       int      `json:"id" yaml:"id"`
	Types    []string `json:"types" yaml:"types"`
	ImageURL string   `json:"image_url" yaml:"image_url"`
	Enriched bool     `json:"enriched" yaml:"enriched"`
	URL      string   `json:"url" yaml:"url"`
}

// NewPlaceholder returns an unenriched summary with empty types and image.
func NewPlaceholder(name string, id int, url string) RecordSummary {
	return RecordSummary{
		Name:  name,
		ID:    id,
		Types: []string{},
		URL:   url,
	}
}

// NewEnriched returns a summary populated from detail data.
func NewEnriched(name string, id int, types []string, imageURL, url string) RecordSummary {
	if types == nil {
		types = []string{}
	}
	return RecordSummary{
		Name:     name,
		ID:       id,
		Types:    types,
		ImageURL: imageURL,
		Enriched: true,
		URL:      url,
	}
}

// StatEntry is one base stat as reported upstream (e.g. "special-attack", 65).
type StatEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// RecordDetail is the full display model of the detail screen. It merges
// the primary record with its species record; species-derived fields stay
// empty until that second fetch has completed.
type RecordDetail struct {
	ID             int         `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	Height         int         `json:"height" yaml:"height"` // decimetres
	Weight         int         `json:"weight" yaml:"weight"` // hectograms
	BaseExperience int         `json:"base_experience" yaml:"base_experience"`
	ImageURL       string      `json:"image_url" yaml:"image_url"`
	Types          []string    `json:"types" yaml:"types"`
	Stats          []StatEntry `json:"stats" yaml:"stats"`
	Abilities      []string    `json:"abilities" yaml:"abilities"`
	Description    string      `json:"description" yaml:"description"`
	Category       string      `json:"category" yaml:"category"`
	Gender         string      `json:"gender" yaml:"gender"`
	Weaknesses     []string    `json:"weaknesses" yaml:"weaknesses"`
	SpeciesURL     string      `json:"species_url" yaml:"species_url"`
}

// Clone returns a deep copy so published snapshots never share slices
// with the component that owns them.
func (d RecordDetail) Clone() RecordDetail {
	d.Types = append([]string{}, d.Types...)
	d.Stats = append([]StatEntry{}, d.Stats...)
	d.Abilities = append([]string{}, d.Abilities...)
	d.Weaknesses = append([]string{}, d.Weaknesses...)
	return d
}

// CloneSummaries copies a summary slice, including each entry's type tags.
func CloneSummaries(in []RecordSummary) []RecordSummary {
	out := make([]RecordSummary, len(in))
	for i, s := range in {
		s.Types = append([]string{}, s.Types...)
		out[i] = s
	}
	return out
}
