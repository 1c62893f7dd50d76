package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var pathToggleStep string

var pathCmd = &cobra.Command{
	Use:   "path [goal]",
	Short: "Show or generate your learning path",
	Long: `Without arguments, show the current learning path and its
progress. With a goal, generate a new path toward it, replacing the old
one. --toggle flips one step's completion instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if pathToggleStep != "" {
			a.planner.ToggleStep(pathToggleStep)
			printPath(a)
			return nil
		}

		if goal := strings.Join(args, " "); goal != "" {
			if _, err := a.planner.Generate(cmd.Context(), goal); err != nil {
				return err
			}
		}

		printPath(a)
		return nil
	},
}

func printPath(a *app) {
	path, ok := a.planner.Path()
	if !ok {
		fmt.Println("No learning path yet. Pass a goal to generate one.")
		return
	}
	fmt.Printf("%s  (%s · %s)\n", path.Title, path.Level, path.Category)
	fmt.Printf("%s\n", path.Description)
	fmt.Printf("Progress: %.0f%%\n\n", a.planner.Progress()*100)
	for _, step := range path.Steps {
		mark := " "
		if step.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %-10s %s (%s)\n", mark, step.ID, step.Title, step.EstimatedTime)
		if step.Description != "" {
			fmt.Printf("               %s\n", step.Description)
		}
		for _, res := range step.Resources {
			fmt.Printf("               → %s %s\n", res.Title, res.URL)
		}
	}
}

func init() {
	pathCmd.Flags().StringVar(&pathToggleStep, "toggle", "", "toggle completion of the given step id")
	rootCmd.AddCommand(pathCmd)
}
