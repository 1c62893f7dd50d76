package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"darijacode/learning"
)

var (
	learnCategory string
	learnLanguage string
	learnSearch   string
	learnDone     bool
)

var learnCmd = &cobra.Command{
	Use:   "learn [topic-id]",
	Short: "Browse lessons or generate one",
	Long: `Without arguments, list the lesson catalog. With a topic id,
generate and print that lesson. --done toggles the completion mark
instead of generating content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 0 {
			topics := learning.Filter(learning.Catalog(), learnCategory, learnLanguage, learnSearch)
			for _, topic := range topics {
				mark := " "
				if a.library.IsCompleted(topic.ID) {
					mark = "x"
				}
				fmt.Printf("[%s] %-26s %s (%s) [%s]\n", mark, topic.ID, topic.Title,
					topic.Category, strings.Join(topic.Tags, ", "))
			}
			return nil
		}

		topic, ok := learning.TopicByID(args[0])
		if !ok {
			return fmt.Errorf("unknown topic: %s", args[0])
		}

		if learnDone {
			a.library.ToggleCompleted(topic.ID)
			if a.library.IsCompleted(topic.ID) {
				fmt.Printf("Marked %s as completed\n", topic.ID)
			} else {
				fmt.Printf("Marked %s as not completed\n", topic.ID)
			}
			return nil
		}

		fmt.Println(a.library.Lesson(cmd.Context(), topic))
		return nil
	},
}

func init() {
	learnCmd.Flags().StringVar(&learnCategory, "category", "", "filter the catalog by category")
	learnCmd.Flags().StringVar(&learnLanguage, "lang", "", "filter the catalog by language")
	learnCmd.Flags().StringVar(&learnSearch, "search", "", "filter the catalog by free text")
	learnCmd.Flags().BoolVar(&learnDone, "done", false, "toggle the completion mark for the topic")
	rootCmd.AddCommand(learnCmd)
}
