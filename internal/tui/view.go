package tui

import (
	"strings"

	"github.com/pdiddy/dex-browser/internal/view"
)

const (
	title      = "Pokémon Browser"
	listHelp   = "/ search • ↑/↓ select • enter open • n/p page • q quit"
	detailHelp = "esc/b back • q quit"
)

// View renders the current route.
func (m Model) View() string {
	if m.route == routeDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	st := m.styles
	sc := m.Screen()
	var b strings.Builder

	b.WriteString(st.Name.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(st.Heading.Render(sc.Heading))
	b.WriteString("\n")
	if sc.Status != "" {
		b.WriteString(st.Status.Render(sc.Status))
		b.WriteString("\n")
	}
	if m.lastErr != "" {
		b.WriteString(st.Status.Render(m.lastErr))
		b.WriteString("\n")
	}

	if sc.Loading {
		b.WriteString(st.Muted.Render("Loading…"))
		b.WriteString("\n")
	} else {
		for _, line := range view.GridLines(st, sc, m.selected) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if nav := view.NavLine(sc.Nav); nav != "" {
		b.WriteString("\n")
		b.WriteString(nav)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(listHelp))
	return b.String()
}

func (m Model) viewDetail() string {
	st := m.styles
	d := m.detail
	var b strings.Builder

	switch {
	case d.ID != m.detailID || (d.Loading && d.Detail == nil):
		b.WriteString(st.Muted.Render("Loading…"))
		b.WriteString("\n")
	case d.Err != "":
		b.WriteString(st.Status.Render("Error: " + d.Err))
		b.WriteString("\n")
	case d.Detail != nil:
		b.WriteString(view.DetailString(st, *d.Detail))
		if d.Loading {
			b.WriteString("\n")
			b.WriteString(st.Muted.Render("Loading species data…"))
			b.WriteString("\n")
		}
	default:
		b.WriteString(st.Muted.Render("Record not found."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(detailHelp))
	return b.String()
}
