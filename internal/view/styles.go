package view

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent      = lipgloss.Color("#EF5350")
	muted       = lipgloss.Color("#9E9E9E")
	barFill     = lipgloss.Color("#66BB6A")
	barEmpty    = lipgloss.Color("#424242")
	warningTone = lipgloss.Color("#FFC107")
)

// typeColors follows the usual colour of each elemental type tag.
var typeColors = map[string]lipgloss.Color{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

// Styles holds the lipgloss styles bound to one output.
type Styles struct {
	r *lipgloss.Renderer

	Heading  lipgloss.Style
	Name     lipgloss.Style
	ID       lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style
}

// NewStyles builds styles for w. Colour is only emitted when w is a
// terminal that supports it.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		r:        r,
		Heading:  r.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Name:     r.NewStyle().Bold(true),
		ID:       r.NewStyle().Foreground(muted),
		Muted:    r.NewStyle().Foreground(muted).Italic(true),
		Status:   r.NewStyle().Foreground(warningTone),
		Selected: r.NewStyle().Reverse(true),
		Label:    r.NewStyle().Foreground(muted).Width(16),
		BarFill:  r.NewStyle().Foreground(barFill),
		BarEmpty: r.NewStyle().Foreground(barEmpty),
	}
}

// Tag renders a type tag in its colour.
func (s Styles) Tag(name string) string {
	st := s.r.NewStyle().Padding(0, 1)
	if c, ok := typeColors[name]; ok {
		st = st.Background(c).Foreground(lipgloss.Color("#FFFFFF"))
	}
	return st.Render(name)
}
