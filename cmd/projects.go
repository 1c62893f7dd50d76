package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"darijacode/projects"
)

var (
	projectsDifficulty string
	projectsTag        string
	projectsSearch     string
	projectsSave       string
	projectsFlowchart  string
	projectsDetails    string
)

var projectsCmd = &cobra.Command{
	Use:   "projects [prompt]",
	Short: "Browse project ideas or generate one",
	Long: `Without arguments, list the project idea catalog. With a prompt,
generate a new idea from it. --save toggles a favorite, --flowchart
prints a Mermaid diagram for an idea, --details prints a build guide.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if projectsSave != "" {
			a.catalog.ToggleSave(projectsSave)
			printIdeas(a.catalog.Ideas())
			return nil
		}

		if projectsFlowchart != "" {
			idea, ok := ideaByID(a.catalog, projectsFlowchart)
			if !ok {
				return fmt.Errorf("unknown idea: %s", projectsFlowchart)
			}
			chart, err := a.catalog.Flowchart(cmd.Context(), idea)
			if err != nil {
				return err
			}
			fmt.Println(chart)
			return nil
		}

		if projectsDetails != "" {
			idea, ok := ideaByID(a.catalog, projectsDetails)
			if !ok {
				return fmt.Errorf("unknown idea: %s", projectsDetails)
			}
			fmt.Println(a.catalog.Details(cmd.Context(), idea))
			return nil
		}

		if prompt := strings.Join(args, " "); prompt != "" {
			idea, err := a.catalog.Generate(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s\n\n", idea.ID)
		}

		printIdeas(a.catalog.Filter(projectsDifficulty, projectsTag, projectsSearch))
		return nil
	},
}

func printIdeas(ideas []projects.ProjectIdea) {
	for _, idea := range ideas {
		mark := " "
		if idea.Saved {
			mark = "*"
		}
		fmt.Printf("%s %-12s %s (%s) [%s]\n", mark, idea.ID, idea.Title,
			idea.Difficulty, strings.Join(idea.Tags, ", "))
		fmt.Printf("               %s\n", idea.Description)
	}
}

func ideaByID(c *projects.Catalog, id string) (projects.ProjectIdea, bool) {
	for _, idea := range c.Ideas() {
		if idea.ID == id {
			return idea, true
		}
	}
	return projects.ProjectIdea{}, false
}

func init() {
	projectsCmd.Flags().StringVar(&projectsDifficulty, "difficulty", "", "filter by difficulty")
	projectsCmd.Flags().StringVar(&projectsTag, "tag", "", "filter by tag")
	projectsCmd.Flags().StringVar(&projectsSearch, "search", "", "filter by free text")
	projectsCmd.Flags().StringVar(&projectsSave, "save", "", "toggle the saved flag on the given idea id")
	projectsCmd.Flags().StringVar(&projectsFlowchart, "flowchart", "", "print a Mermaid flowchart for the given idea id")
	projectsCmd.Flags().StringVar(&projectsDetails, "details", "", "print a build guide for the given idea id")
	rootCmd.AddCommand(projectsCmd)
}
