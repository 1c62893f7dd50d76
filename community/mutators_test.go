package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPosts() []Post {
	return []Post{
		{ID: "a", Content: "first", Likes: 2, Replies: []Reply{{ID: "r1", Likes: 1}}},
		{ID: "b", Content: "second"},
	}
}

func TestPrependPost(t *testing.T) {
	posts := twoPosts()
	next := PrependPost(posts, Post{ID: "c"})

	require.Len(t, next, 3)
	assert.Equal(t, "c", next[0].ID)
	assert.Equal(t, "a", next[1].ID)
	assert.Len(t, posts, 2)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	posts := twoPosts()

	liked := ToggleLike(posts, "a")
	assert.True(t, liked[0].Liked)
	assert.Equal(t, 3, liked[0].Likes)

	unliked := ToggleLike(liked, "a")
	assert.False(t, unliked[0].Liked)
	assert.Equal(t, 2, unliked[0].Likes)

	// previous state untouched
	assert.False(t, posts[0].Liked)
	assert.Equal(t, 2, posts[0].Likes)
}

func TestToggleLikeUnknownID(t *testing.T) {
	posts := twoPosts()
	next := ToggleLike(posts, "missing")
	assert.Equal(t, posts, next)
}

func TestToggleLikeNeverNegative(t *testing.T) {
	posts := []Post{{ID: "a", Liked: true, Likes: 0}}
	next := ToggleLike(posts, "a")
	assert.False(t, next[0].Liked)
	assert.Equal(t, 0, next[0].Likes)
}

func TestToggleReplyLike(t *testing.T) {
	posts := twoPosts()

	next := ToggleReplyLike(posts, "a", "r1")
	require.Len(t, next[0].Replies, 1)
	assert.True(t, next[0].Replies[0].Liked)
	assert.Equal(t, 2, next[0].Replies[0].Likes)

	// the original reply slice is not shared
	assert.False(t, posts[0].Replies[0].Liked)
	assert.Equal(t, 1, posts[0].Replies[0].Likes)

	back := ToggleReplyLike(next, "a", "r1")
	assert.False(t, back[0].Replies[0].Liked)
	assert.Equal(t, 1, back[0].Replies[0].Likes)
}

func TestToggleFlag(t *testing.T) {
	posts := twoPosts()
	flagged := ToggleFlag(posts, "b")
	assert.True(t, flagged[1].Flagged)
	assert.False(t, posts[1].Flagged)

	cleared := ToggleFlag(flagged, "b")
	assert.False(t, cleared[1].Flagged)
}

func TestAppendReply(t *testing.T) {
	posts := twoPosts()
	next := AppendReply(posts, "a", Reply{ID: "r2", Content: "hi"})

	require.Len(t, next[0].Replies, 2)
	assert.Equal(t, "r2", next[0].Replies[1].ID)
	assert.Len(t, posts[0].Replies, 1)
}

func TestAppendReplyUnknownPost(t *testing.T) {
	posts := twoPosts()
	next := AppendReply(posts, "missing", Reply{ID: "r2"})
	assert.Equal(t, posts, next)
}
