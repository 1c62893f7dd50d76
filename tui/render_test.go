package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"darijacode/community"
)

func TestRenderPost(t *testing.T) {
	post := community.Post{
		ID:        "post-1",
		Author:    "Youssef",
		Content:   "How do promises work?",
		Timestamp: "2 hours ago",
		Likes:     3,
		Liked:     true,
		Flagged:   true,
		Tags:      []string{"javascript", "question"},
		Replies: []community.Reply{
			{Author: "AI Assistant", Content: "They settle once.", Likes: 1, IsAI: true},
		},
	}

	out := renderPost(post)
	assert.Contains(t, out, "post-1")
	assert.Contains(t, out, "Youssef")
	assert.Contains(t, out, "3 likes")
	assert.Contains(t, out, "♥")
	assert.Contains(t, out, "⚑")
	assert.Contains(t, out, "[javascript, question]")
	assert.Contains(t, out, "They settle once.")
}

func TestPlaceholders(t *testing.T) {
	for p := pageChat; p <= pageForum; p++ {
		assert.NotEmpty(t, placeholderFor(p))
	}
	assert.Contains(t, helpFor(pageChat), "ctrl+l")
	assert.NotContains(t, helpFor(pageForum), "ctrl+l")
}
