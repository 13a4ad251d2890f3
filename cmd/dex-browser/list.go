package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dex-browser/internal/search"
	"github.com/pdiddy/dex-browser/internal/view"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show one page of the catalogue",
	Long: `List fetches one page of the catalogue and the detail of every record on
it, then prints the page together with its next and previous cursors. Pass
a cursor back with --url to continue paging.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Int("offset", 0, "index of the first record on the page")
	listCmd.Flags().String("url", "", "cursor URL from a previous page (overrides --offset)")
	addFormatFlags(listCmd)

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	c, err := newCatalog(viper.GetViper(), logger)
	if err != nil {
		return err
	}

	url, _ := cmd.Flags().GetString("url")
	if url == "" {
		offset, _ := cmd.Flags().GetInt("offset")
		if offset < 0 {
			return fmt.Errorf("--offset must not be negative")
		}
		url = c.src.PageURL(c.cfg.PageSize, offset)
	}

	if err := c.browse.Load(cmd.Context(), url); err != nil {
		return err
	}
	state := c.browse.Snapshot()

	if format != view.FormatText {
		return view.Encode(cmd.OutOrStdout(), format, view.ListOutput{
			URL:      state.URL,
			Records:  state.Collection,
			Next:     state.Cursor.Forward,
			Previous: state.Cursor.Backward,
		})
	}

	out := cmd.OutOrStdout()
	if err := view.RenderGrid(out, view.Arbitrate(state, search.State{})); err != nil {
		return err
	}
	if state.Cursor.HasForward() {
		fmt.Fprintf(out, "next:     %s\n", state.Cursor.Forward)
	}
	if state.Cursor.HasBackward() {
		fmt.Fprintf(out, "previous: %s\n", state.Cursor.Backward)
	}
	return nil
}
