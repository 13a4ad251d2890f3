// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/dex-browser/internal/derive"
	"github.com/pdiddy/dex-browser/pkg/types"
)

// barWidth is the width in cells of a full stat bar.
const barWidth = 30

// LoadingLabel marks a placeholder row whose detail has not arrived.
const LoadingLabel = "loading…"

// GridLines renders the records of sc one per line. The row at selected
// is highlighted; pass -1 for none.
func GridLines(st Styles, sc Screen, selected int) []string {
	lines := make([]string, 0, len(sc.Records))
	for i, r := range sc.Records {
		line := fmt.Sprintf("%s  %-14s  %s", st.ID.Render(derive.DisplayID(r.ID)), derive.Capitalise(r.Name), tagsOrLoading(st, r, sc.Pending))
		if i == selected {
			line = st.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func tagsOrLoading(st Styles, r types.RecordSummary, pending bool) string {
	if r.Enriched {
		tags := make([]string, len(r.Types))
		for i, t := range r.Types {
			tags[i] = st.Tag(t)
		}
		return strings.Join(tags, " ")
	}
	if pending {
		return st.Muted.Render(LoadingLabel)
	}
	// degraded
	return ""
}

// RenderGrid writes the heading, status line, records and navigation hints
// of sc.
func RenderGrid(w io.Writer, sc Screen) error {
	st := NewStyles(w)
	var b strings.Builder

	b.WriteString(st.Heading.Render(sc.Heading))
	b.WriteString("\n")
	if sc.Status != "" {
		b.WriteString(st.Status.Render(sc.Status))
		b.WriteString("\n")
	}
	for _, line := range GridLines(st, sc, -1) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if nav := NavLine(sc.Nav); nav != "" {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(nav))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// NavLine describes the available navigation, or "" when hidden.
func NavLine(n Nav) string {
	if !n.Visible {
		return ""
	}
	var parts []string
	if n.HasPrevious {
		parts = append(parts, "← previous")
	}
	if n.HasNext {
		parts = append(parts, "next →")
	}
	return strings.Join(parts, "   ")
}

// RenderDetail writes one record's full detail.
func RenderDetail(w io.Writer, d types.RecordDetail) error {
	_, err := io.WriteString(w, DetailString(NewStyles(w), d))
	return err
}

// DetailString renders d with st.
func DetailString(st Styles, d types.RecordDetail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", st.Name.Render(derive.Capitalise(d.Name)), st.ID.Render(derive.DisplayID(d.ID)))
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	b.WriteString("\n")

	primaryAbility := ""
	if len(d.Abilities) > 0 {
		primaryAbility = derive.Capitalise(d.Abilities[0])
	}
	rows := [][2]string{
		{"Height", derive.HeightMeters(d.Height)},
		{"Weight", derive.WeightKilograms(d.Weight)},
		{"Category", d.Category},
		{"Gender", d.Gender},
		{"Abilities", primaryAbility},
		{"Base XP", fmt.Sprint(d.BaseExperience)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%s%s\n", st.Label.Render(row[0]), row[1])
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s\n", st.Label.Render("Type"), tagList(st, d.Types))
	fmt.Fprintf(&b, "%s%s\n", st.Label.Render("Weaknesses"), tagList(st, d.Weaknesses))

	if len(d.Stats) > 0 {
		b.WriteString("\n")
		for _, s := range d.Stats {
			fmt.Fprintf(&b, "%s%3d %s\n", st.Label.Render(derive.StatName(s.Name)), s.Value, StatBar(st, s.Value))
		}
	}
	return b.String()
}

func tagList(st Styles, names []string) string {
	tags := make([]string, len(names))
	for i, n := range names {
		tags[i] = st.Tag(n)
	}
	return strings.Join(tags, " ")
}

// StatBar draws value as a bar of barWidth cells scaled by
// derive.StatBarPercent.
func StatBar(st Styles, value int) string {
	filled := int(derive.StatBarPercent(value) / 100 * barWidth)
	return st.BarFill.Render(strings.Repeat("█", filled)) +
		st.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}
