// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package derive turns raw upstream payload values into display-ready
// scalars: record ids, stat labels and bar widths, gender labels, type
// weaknesses, and cleaned description text. Every function is pure.
package derive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWeaknesses caps the weakness list shown for a record.
const MaxWeaknesses = 4

// statBarMax is the base stat value drawn as a full bar.
const statBarMax = 180.0

// SegmentFromURL returns the path segment immediately before the trailing
// slash of a resource URL ("…/pokemon/4/" → "4"). A URL without a trailing
// slash yields its last segment.
func SegmentFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) >= 2 && parts[len(parts)-1] == "" {
		return parts[len(parts)-2]
	}
	return parts[len(parts)-1]
}

// ParseID extracts the numeric record id from a resource URL.
func ParseID(url string) (int, error) {
	seg := SegmentFromURL(url)
	id, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("no numeric id in %q", url)
	}
	return id, nil
}

// FormatID zero-pads id to four digits (1 → "0001").
func FormatID(id int) string {
	return fmt.Sprintf("%04d", id)
}

// DisplayID is FormatID with the hash prefix used on cards (1 → "#0001").
func DisplayID(id int) string {
	return "#" + FormatID(id)
}

// Capitalise upper-cases the first letter of s.
func Capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var statNames = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Special Attack",
	"special-defense": "Special Defense",
	"speed":           "Speed",
}

// StatName maps an API stat name to its display label.
func StatName(raw string) string {
	if name, ok := statNames[raw]; ok {
		return name
	}
	return Capitalise(raw)
}

// StatBarPercent scales a base stat to a 0–100 bar width.
func StatBarPercent(value int) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(float64(value)/statBarMax*100, 100)
}

// Gender labels for the rates the API uses as special values.
const (
	Genderless = "Genderless"
	MaleOnly   = "Male only"
	FemaleOnly = "Female only"
	Mixed      = "Male / Female"
)

// GenderLabel decodes a gender rate (eighths female, -1 genderless).
func GenderLabel(rate int) string {
	switch rate {
	case -1:
		return Genderless
	case 0:
		return MaleOnly
	case 8:
		return FemaleOnly
	default:
		return Mixed
	}
}

// Weaknesses returns the union of weaknesses for types in type order,
// without duplicates, truncated to MaxWeaknesses. Unknown types add
// nothing.
func Weaknesses(types []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range types {
		for _, w := range weaknessChart[t] {
			if seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	if len(out) > MaxWeaknesses {
		out = out[:MaxWeaknesses]
	}
	return out
}

// WeaknessesOf returns a copy of the chart entry for a single type.
func WeaknessesOf(typeName string) []string {
	return append([]string{}, weaknessChart[typeName]...)
}

var descriptionReplacer = strings.NewReplacer(
	"\f", " ",
	"POKéMON", "Pokémon",
	"POKEMON", "Pokémon",
)

// CleanDescription replaces form feeds with spaces and normalises the
// two upper-case spellings of the species placeholder word.
func CleanDescription(text string) string {
	return descriptionReplacer.Replace(text)
}

// CleanCategory strips the trailing " Pokémon" from a genus
// ("Seed Pokémon" → "Seed").
func CleanCategory(genus string) string {
	return strings.Replace(genus, " Pokémon", "", 1)
}

// HeightMeters formats a height in decimetres as metres ("0.7m").
func HeightMeters(decimetres int) string {
	return fmt.Sprintf("%.1fm", float64(decimetres)/10)
}

// WeightKilograms formats a weight in hectograms as kilograms ("6.9 kg").
func WeightKilograms(hectograms int) string {
	return fmt.Sprintf("%.1f kg", float64(hectograms)/10)
}
