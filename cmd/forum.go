package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"darijacode/community"
)

var (
	forumTag    string
	forumSearch string
)

var forumCmd = &cobra.Command{
	Use:   "forum",
	Short: "Read and post on the community board",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		for _, post := range a.board.Filter(forumSearch, forumTag) {
			printForumPost(post)
		}
		return nil
	},
}

var forumNameCmd = &cobra.Command{
	Use:   "name <display-name>",
	Short: "Set the display name used for your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.board.SetUserName(args[0])
		fmt.Printf("Posting as %s\n", args[0])
		return nil
	},
}

var forumPostCmd = &cobra.Command{
	Use:   "post <content>",
	Short: "Publish a new post",
	Long: `Publish a new post. Question-like posts receive an assistant
reply after a short delay; the command waits for it before returning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := requireUserName(a); err != nil {
			return err
		}

		content := strings.Join(args, " ")
		post := a.board.SubmitPost(cmd.Context(), content)
		fmt.Printf("Posted %s [%s]\n", post.ID, strings.Join(post.Tags, ", "))

		if community.IsQuestion(content) {
			fmt.Println("Waiting for the assistant...")
			waitForReply(a, post.ID, 0)
		}

		for _, p := range a.board.Posts() {
			if p.ID == post.ID {
				printForumPost(p)
			}
		}
		return nil
	},
}

var forumReplyCmd = &cobra.Command{
	Use:   "reply <post-id> <content>",
	Short: "Reply to a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := requireUserName(a); err != nil {
			return err
		}

		postID := args[0]
		content := strings.Join(args[1:], " ")
		before := replyCount(a, postID)
		a.board.SubmitReply(postID, content)

		if community.IsQuestion(content) {
			fmt.Println("Waiting for the assistant...")
			waitForReply(a, postID, before+1)
		}

		for _, p := range a.board.Posts() {
			if p.ID == postID {
				printForumPost(p)
			}
		}
		return nil
	},
}

var forumLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.board.ToggleLike(args[0])
		return nil
	},
}

var forumFlagCmd = &cobra.Command{
	Use:   "flag <post-id>",
	Short: "Toggle the moderation flag on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.board.ToggleFlag(args[0])
		return nil
	},
}

func requireUserName(a *app) error {
	if a.board.UserName() == "" {
		return fmt.Errorf("no display name set: run `darijacode forum name <name>` first")
	}
	return nil
}

// waitForReply polls until the thread grows past the given reply count or
// the deadline passes. The generated reply may legitimately never come,
// for example when the request failed.
func waitForReply(a *app, postID string, after int) {
	deadline := time.Now().Add(a.cfg.ReplyDelay() + 15*time.Second)
	for time.Now().Before(deadline) {
		if replyCount(a, postID) > after {
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func replyCount(a *app, postID string) int {
	for _, p := range a.board.Posts() {
		if p.ID == postID {
			return len(p.Replies)
		}
	}
	return 0
}

func printForumPost(post community.Post) {
	flag := ""
	if post.Flagged {
		flag = " ⚑"
	}
	fmt.Printf("%s  %s · %s · %d likes%s\n", post.ID, post.Author, post.Timestamp, post.Likes, flag)
	fmt.Printf("%s\n", post.Content)
	if len(post.Tags) > 0 {
		fmt.Printf("[%s]\n", strings.Join(post.Tags, ", "))
	}
	for _, reply := range post.Replies {
		fmt.Printf("  ↳ %s (%d likes): %s\n", reply.Author, reply.Likes, reply.Content)
	}
	fmt.Println()
}

func init() {
	forumCmd.Flags().StringVar(&forumTag, "tag", "", "filter posts by tag")
	forumCmd.Flags().StringVar(&forumSearch, "search", "", "filter posts by free text")
	forumCmd.AddCommand(forumNameCmd, forumPostCmd, forumReplyCmd, forumLikeCmd, forumFlagCmd)
	rootCmd.AddCommand(forumCmd)
}
