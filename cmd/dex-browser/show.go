package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dex-browser/internal/detail"
	"github.com/pdiddy/dex-browser/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show the full detail of one record",
	Long: `Show fetches one record by numeric id, name, or resource URL together with
its species data, and prints description, measurements, category, gender,
types, weaknesses, and base stats.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	addFormatFlags(showCmd)

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	c, err := newCatalog(viper.GetViper(), logger)
	if err != nil {
		return err
	}

	if err := c.detail.Load(cmd.Context(), detail.IDFromRoute(args[0])); err != nil {
		return err
	}
	d := c.detail.Snapshot().Detail

	if format != view.FormatText {
		return view.Encode(cmd.OutOrStdout(), format, d)
	}
	return view.RenderDetail(cmd.OutOrStdout(), *d)
}
