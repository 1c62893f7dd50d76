package cmd

import (
	"github.com/spf13/cobra"

	"darijacode/tui"
)

var rootCmd = &cobra.Command{
	Use:   "darijacode",
	Short: "DarijaCode Hub is a coding companion for Moroccan developers",
	Long: `DarijaCode Hub is a terminal coding companion for Moroccan developers.
It answers coding questions in Darija, Arabic, French or English, generates
lessons and learning paths, suggests project ideas, and hosts a small
community board.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return tui.Run(tui.Deps{
			Session: a.session,
			Library: a.library,
			Planner: a.planner,
			Catalog: a.catalog,
			Board:   a.board,
			Logger:  a.logger,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
