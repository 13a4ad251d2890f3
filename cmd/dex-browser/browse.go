package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dex-browser/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive terminal browser",
	Long: `Browse opens a full-screen browser over the catalogue.

  /            focus the search box (enter runs the search, esc leaves it)
  up/down      move the selection
  enter        open the selected record
  n, right     next page
  p, left      previous page
  esc, b       back to the list from a record
  q, ctrl+c    quit

An empty search returns to the catalogue page you were on.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCatalog(viper.GetViper(), logger)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), tui.Components{
			Browse: c.browse,
			Search: c.search,
			Detail: c.detail,
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
