// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal browser. It drives the browse,
// search, and detail components from key presses and redraws whenever one
// of them publishes a new state.
package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/browse"
	"github.com/pdiddy/dex-browser/internal/detail"
	"github.com/pdiddy/dex-browser/internal/search"
	"github.com/pdiddy/dex-browser/internal/view"
)

// Browser is the collection side. *browse.Orchestrator implements it.
type Browser interface {
	Mount(ctx context.Context) error
	Forward(ctx context.Context) (bool, error)
	Backward(ctx context.Context) (bool, error)
	Snapshot() browse.State
	OnChange(fn func(browse.State))
}

// Searcher is the search side. *search.Engine implements it.
type Searcher interface {
	SetTerm(term string)
	Execute(ctx context.Context) error
	Next(ctx context.Context) (bool, error)
	Previous(ctx context.Context) (bool, error)
	Snapshot() search.State
	OnChange(fn func(search.State))
}

// Detailer loads the record behind the detail route. *detail.Composer
// implements it.
type Detailer interface {
	Load(ctx context.Context, id string) error
	Snapshot() detail.State
	OnChange(fn func(detail.State))
}

// Components are the stateful parts the browser drives.
type Components struct {
	Browse Browser
	Search Searcher
	Detail Detailer
}

type route int

const (
	routeList route = iota
	routeDetail
)

type (
	browseMsg  browse.State
	searchMsg  search.State
	detailMsg  detail.State
	actionDone struct {
		op  string
		err error
	}
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctx    context.Context
	c      Components
	logger *zap.Logger
	styles view.Styles

	input    textinput.Model
	route    route
	selected int
	detailID string

	browse browse.State
	search search.State
	detail detail.State

	// lastErr is the last search failure, cleared by the next search action.
	lastErr string
	width   int
}

// New returns a Model over c. Blocking calls run with ctx.
func New(ctx context.Context, c Components, styles view.Styles, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Search Pokémon..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	return Model{
		ctx:    ctx,
		c:      c,
		logger: logger.Named("tui"),
		styles: styles,
		input:  ti,
		browse: c.Browse.Snapshot(),
		search: c.Search.Snapshot(),
		detail: c.Detail.Snapshot(),
	}
}

// Init mounts the collection: the name index and the first page.
func (m Model) Init() tea.Cmd {
	return m.run("mount", m.c.Browse.Mount)
}

// Screen returns the arbitrated list screen for the current snapshots.
func (m Model) Screen() view.Screen {
	return view.Arbitrate(m.browse, m.search)
}

// Update handles key presses, component state changes and action results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case browseMsg:
		m.browse = browse.State(msg)
		m.clampSelection()
		return m, nil
	case searchMsg:
		m.search = search.State(msg)
		m.clampSelection()
		return m, nil
	case detailMsg:
		m.detail = detail.State(msg)
		return m, nil
	case actionDone:
		if msg.err == nil || ignorable(msg.err) {
			if strings.HasPrefix(msg.op, "search") {
				m.lastErr = ""
			}
			return m, nil
		}
		m.logger.Warn("action failed", zap.String("op", msg.op), zap.Error(msg.err))
		// Browse and detail failures are already part of their states.
		if strings.HasPrefix(msg.op, "search") {
			m.lastErr = msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		if m.route == routeDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.input.Blur()
		m.selected = 0
		m.c.Search.SetTerm(m.input.Value())
		return m, m.run("search", m.c.Search.Execute)
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.c.Search.SetTerm(m.input.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sc := m.Screen()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.input.Focus()
		return m, cmd
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(sc.Records)-1 {
			m.selected++
		}
	case "enter":
		if m.selected < 0 || m.selected >= len(sc.Records) {
			return m, nil
		}
		rec := sc.Records[m.selected]
		id := detail.IDFromRoute(rec.URL)
		if id == "" {
			id = strconv.Itoa(rec.ID)
		}
		m.route = routeDetail
		m.detailID = id
		return m, m.run("detail", func(ctx context.Context) error { return m.c.Detail.Load(ctx, id) })
	case "n", "right":
		if !sc.Nav.Visible || !sc.Nav.HasNext {
			return m, nil
		}
		m.selected = 0
		if sc.Nav.Binding == view.NavSearch {
			return m, m.runMove("search next", m.c.Search.Next)
		}
		return m, m.runMove("browse forward", m.c.Browse.Forward)
	case "p", "left":
		if !sc.Nav.Visible || !sc.Nav.HasPrevious {
			return m, nil
		}
		m.selected = 0
		if sc.Nav.Binding == view.NavSearch {
			return m, m.runMove("search previous", m.c.Search.Previous)
		}
		return m, m.runMove("browse backward", m.c.Browse.Backward)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b", "backspace":
		m.route = routeList
	}
	return m, nil
}

func (m *Model) clampSelection() {
	n := len(m.Screen().Records)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// run executes fn off the event loop and reports its result.
func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDone{op: op, err: fn(ctx)}
	}
}

func (m Model) runMove(op string, fn func(context.Context) (bool, error)) tea.Cmd {
	return m.run(op, func(ctx context.Context) error {
		_, err := fn(ctx)
		return err
	})
}

// ignorable reports errors that only mean a newer action took over.
func ignorable(err error) bool {
	return errors.Is(err, browse.ErrSuperseded) ||
		errors.Is(err, search.ErrSuperseded) ||
		errors.Is(err, detail.ErrSuperseded) ||
		errors.Is(err, context.Canceled)
}
