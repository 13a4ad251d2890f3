// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

// listResponse is the paginated collection payload. Next and Previous are
// JSON null at either end of the collection.
type listResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []NamedRef `json:"results"`
}

// NamedRef is the {name, url} reference object used throughout the API.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Record is the record detail payload.
type Record struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	BaseExperience int           `json:"base_experience"`
	Types          []TypeSlot    `json:"types"`
	Sprites        Sprites       `json:"sprites"`
	Stats          []StatSlot    `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities"`
	Species        NamedRef   `json:"species"`
}

// TypeNames returns the record's type names in slot order.
func (r Record) TypeNames() []string {
	names := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// ImageURL returns the default front sprite, or "" when the API sent null.
func (r Record) ImageURL() string {
	if r.Sprites.FrontDefault == nil {
		return ""
	}
	return *r.Sprites.FrontDefault
}

// TypeSlot is one entry of the record's types array.
type TypeSlot struct {
	Slot int         `json:"slot"`
	Type NamedRef `json:"type"`
}

// Sprites holds the image URLs; only the default front sprite is used.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// StatSlot is one base stat.
type StatSlot struct {
	BaseStat int         `json:"base_stat"`
	Stat     NamedRef `json:"stat"`
}

// AbilitySlot is one ability.
type AbilitySlot struct {
	Ability  NamedRef `json:"ability"`
	IsHidden bool        `json:"is_hidden"`
}

// Species is the species payload: localised flavour texts and genera plus
// the gender rate in eighths female (-1 for genderless).
type Species struct {
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	Genera            []Genus      `json:"genera"`
	GenderRate        int          `json:"gender_rate"`
}

// FlavorText is one localised description.
type FlavorText struct {
	FlavorText string      `json:"flavor_text"`
	Language   NamedRef `json:"language"`
}

// Genus is one localised category name.
type Genus struct {
	Genus    string      `json:"genus"`
	Language NamedRef `json:"language"`
}

// FlavorTextFor returns the first flavour text in language lang.
func (s Species) FlavorTextFor(lang string) (string, bool) {
	for _, e := range s.FlavorTextEntries {
		if e.Language.Name == lang {
			return e.FlavorText, true
		}
	}
	return "", false
}

// GenusFor returns the first genus in language lang.
func (s Species) GenusFor(lang string) (string, bool) {
	for _, g := range s.Genera {
		if g.Language.Name == lang {
			return g.Genus, true
		}
	}
	return "", false
}
