package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	chatAudioPath string
	chatLanguage  string
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the assistant a single question",
	Long: `Ask the assistant a single question and print its answer. The
exchange is appended to the persistent chat history. With --audio, the
question is transcribed from an audio file first.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if chatLanguage != "" {
			a.session.SetLanguage(chatLanguage)
		}

		question := strings.Join(args, " ")
		if chatAudioPath != "" {
			audio, err := os.ReadFile(chatAudioPath)
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}
			question, err = a.transcriber.Transcribe(cmd.Context(), audio, filepath.Base(chatAudioPath))
			if err != nil {
				return fmt.Errorf("failed to transcribe audio: %w", err)
			}
			fmt.Printf("You said: %s\n\n", question)
		}

		if strings.TrimSpace(question) == "" {
			return fmt.Errorf("nothing to ask: pass a question or --audio")
		}

		reply := a.session.Send(cmd.Context(), question)
		fmt.Println(reply.Content)
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatAudioPath, "audio", "", "transcribe the question from an audio file")
	chatCmd.Flags().StringVar(&chatLanguage, "lang", "", "response language (en, fr, ar, darija)")
	rootCmd.AddCommand(chatCmd)
}
