package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dex-browser/internal/browse"
	"github.com/pdiddy/dex-browser/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search every record name for a term",
	Long: `Search loads the full name index, keeps every name containing TERM
(case-insensitive), and prints one page of the matches with their detail.
Pages have the same size as list pages.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 1, "1-based page of the matches to print")
	addFormatFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	c, err := newCatalog(viper.GetViper(), logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := c.browse.LoadNameIndex(ctx); err != nil {
		return err
	}

	c.search.SetTerm(strings.Join(args, " "))
	if err := c.search.Execute(ctx); err != nil {
		return err
	}
	if page > 1 {
		moved, err := c.search.GoTo(ctx, page)
		if err != nil {
			return err
		}
		if !moved {
			s := c.search.Snapshot()
			return fmt.Errorf("page %d out of range: %d match(es) in %d page(s)", page, s.MatchCount(), s.PageCount())
		}
	}
	state := c.search.Snapshot()

	if format != view.FormatText {
		return view.Encode(cmd.OutOrStdout(), format, view.SearchOutput{
			Term:    state.LastExecutedTerm,
			Matches: state.MatchCount(),
			Page:    state.PageNumber(),
			Pages:   state.PageCount(),
			Records: state.Results,
		})
	}
	return view.RenderGrid(cmd.OutOrStdout(), view.Arbitrate(browse.State{}, state))
}
