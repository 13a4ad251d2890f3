package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pdiddy/dex-browser/internal/browse"
	"github.com/pdiddy/dex-browser/internal/detail"
	"github.com/pdiddy/dex-browser/internal/search"
	"github.com/pdiddy/dex-browser/internal/view"
)

// Run starts the full-screen browser and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, c Components, logger *zap.Logger) error {
	m := New(ctx, c, view.NewStyles(os.Stdout), logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	c.Browse.OnChange(func(s browse.State) { p.Send(browseMsg(s)) })
	c.Search.OnChange(func(s search.State) { p.Send(searchMsg(s)) })
	c.Detail.OnChange(func(s detail.State) { p.Send(detailMsg(s)) })

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
