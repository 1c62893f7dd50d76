package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"darijacode/community"
	"darijacode/learning"
	"darijacode/llm"
)

// renderMarkdown pretty-prints generated markdown for the viewport. When
// rendering fails the raw text is shown instead.
func renderMarkdown(body string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}

func (m model) renderPage() string {
	switch m.page {
	case pageChat:
		return m.renderChat()
	case pageLearn:
		return m.renderLearn()
	case pagePath:
		return m.renderPath()
	case pageProjects:
		return m.renderProjects()
	case pageForum:
		return m.renderForum()
	}
	return ""
}

func (m model) renderChat() string {
	var b strings.Builder
	lang := m.deps.Session.Language()
	for _, l := range llm.Languages {
		if l.ID == lang {
			b.WriteString(statusStyle.Render("Responding in "+l.Name) + "\n\n")
		}
	}
	for _, msg := range m.deps.Session.Messages() {
		if msg.Role == "assistant" {
			b.WriteString(aiStyle.Render("assistant") + "\n")
			b.WriteString(renderMarkdown(msg.Content, m.view.Width))
		} else {
			b.WriteString("you\n" + msg.Content + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderLearn() string {
	var b strings.Builder
	b.WriteString("Lessons\n\n")
	for _, topic := range learning.Catalog() {
		mark := "[ ]"
		if m.deps.Library.IsCompleted(topic.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %-26s %s (%s) [%s]\n", mark, topic.ID, topic.Title,
			topic.Category, strings.Join(topic.Tags, ", "))
	}
	b.WriteString("\nType a topic id to open the lesson.\n")
	return b.String()
}

func (m model) renderPath() string {
	path, ok := m.deps.Planner.Path()
	if !ok {
		return "No learning path yet.\n\nDescribe your goal and press enter to generate one."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%s · %s)\n", path.Title, path.Level, path.Category)
	fmt.Fprintf(&b, "%s\n", path.Description)
	fmt.Fprintf(&b, "Progress: %.0f%%\n\n", m.deps.Planner.Progress()*100)
	for _, step := range path.Steps {
		mark := "[ ]"
		if step.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s  %s (%s)\n", mark, step.ID, step.Title, step.EstimatedTime)
		if step.Description != "" {
			fmt.Fprintf(&b, "      %s\n", step.Description)
		}
		for _, res := range step.Resources {
			fmt.Fprintf(&b, "      → %s %s\n", res.Title, res.URL)
		}
	}
	return b.String()
}

func (m model) renderProjects() string {
	var b strings.Builder
	b.WriteString("Project ideas\n\n")
	for _, idea := range m.deps.Catalog.Ideas() {
		mark := " "
		if idea.Saved {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s  %s (%s) [%s]\n", mark, idea.ID, idea.Title,
			idea.Difficulty, strings.Join(idea.Tags, ", "))
		fmt.Fprintf(&b, "    %s\n", idea.Description)
	}
	return b.String()
}

func (m model) renderForum() string {
	if m.deps.Board.UserName() == "" {
		return "Welcome to the community!\n\nPick a display name to start posting."
	}
	var b strings.Builder
	for _, post := range m.deps.Board.Posts() {
		b.WriteString(renderPost(post))
		b.WriteString("\n")
	}
	return b.String()
}

func renderPost(post community.Post) string {
	var b strings.Builder
	flag := ""
	if post.Flagged {
		flag = " ⚑"
	}
	liked := ""
	if post.Liked {
		liked = " ♥"
	}
	fmt.Fprintf(&b, "%s  %s · %s · %d likes%s%s\n", post.ID, post.Author, post.Timestamp, post.Likes, liked, flag)
	fmt.Fprintf(&b, "%s\n", post.Content)
	if len(post.Tags) > 0 {
		fmt.Fprintf(&b, "[%s]\n", strings.Join(post.Tags, ", "))
	}
	for _, reply := range post.Replies {
		author := reply.Author
		if reply.IsAI {
			author = aiStyle.Render(author)
		}
		fmt.Fprintf(&b, "  ↳ %s (%d likes): %s\n", author, reply.Likes, reply.Content)
	}
	return b.String()
}
