package community

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"darijacode/llm"
	"darijacode/store"
)

// boardCompleter answers tag requests and reply requests separately so a
// test can steer each phase. It is safe for concurrent use because reply
// generation runs off the submitting goroutine.
type boardCompleter struct {
	mu         sync.Mutex
	tagOut     string
	tagErr     error
	replyOut   string
	replyErr   error
	replyCalls int
}

func (f *boardCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.Contains(req.System, "tagging assistant") {
		return f.tagOut, f.tagErr
	}
	f.replyCalls++
	return f.replyOut, f.replyErr
}

func (f *boardCompleter) replies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replyCalls
}

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.Open(dir)
	require.NoError(t, err)
	return s
}

func newTestBoard(t *testing.T, completer llm.Completer) *Board {
	t.Helper()
	b := NewBoard(openStore(t, t.TempDir()), completer, zap.NewNop())
	b.SetReplyDelay(10 * time.Millisecond)
	return b
}

func TestNewBoardSeedsDefaults(t *testing.T) {
	b := newTestBoard(t, &boardCompleter{})

	posts := b.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, "Youssef", posts[0].Author)
	assert.True(t, posts[0].Replies[0].IsAI)
	assert.Equal(t, "", b.UserName())
}

func TestSubmitPostCommitsImmediately(t *testing.T) {
	fake := &boardCompleter{tagOut: `["css", "layout", "extra", "dropped"]`}
	b := newTestBoard(t, fake)
	b.SetUserName("Nadia")

	post := b.SubmitPost(context.Background(), "Check out my new portfolio site")

	posts := b.Posts()
	require.Len(t, posts, 4)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Equal(t, "Nadia", posts[0].Author)
	assert.Equal(t, []string{"css", "layout", "extra"}, posts[0].Tags)
	assert.Empty(t, posts[0].Replies)

	// no question, so nothing was scheduled
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fake.replies())
}

func TestSubmitPostTagFailureFallsBack(t *testing.T) {
	fake := &boardCompleter{tagErr: errors.New("down")}
	b := newTestBoard(t, fake)

	post := b.SubmitPost(context.Background(), "Sharing my progress this week")
	assert.Equal(t, []string{"general"}, post.Tags)
}

func TestSubmitPostTagPayloadUnreadableFallsBack(t *testing.T) {
	fake := &boardCompleter{tagOut: "here are some tags for you"}
	b := newTestBoard(t, fake)

	post := b.SubmitPost(context.Background(), "Sharing my progress this week")
	assert.Equal(t, []string{"general"}, post.Tags)
}

func TestQuestionPostGetsDelayedReplyMergedOnCurrentState(t *testing.T) {
	fake := &boardCompleter{
		tagOut:   `["css"]`,
		replyOut: "Use flexbox with justify-content and align-items set to center.",
	}
	b := newTestBoard(t, fake)
	b.SetUserName("Nadia")

	post := b.SubmitPost(context.Background(), "How do I center a div?")

	// interact with the thread while the reply is pending
	b.ToggleLike(post.ID)

	assert.Eventually(t, func() bool {
		for _, p := range b.Posts() {
			if p.ID == post.ID {
				return len(p.Replies) == 1
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	var got Post
	for _, p := range b.Posts() {
		if p.ID == post.ID {
			got = p
		}
	}
	require.Len(t, got.Replies, 1)
	assert.Equal(t, AIAuthor, got.Replies[0].Author)
	assert.True(t, got.Replies[0].IsAI)
	assert.Contains(t, got.Replies[0].Content, "flexbox")

	// the like taken during the delay survived the merge
	assert.True(t, got.Liked)
	assert.Equal(t, 1, got.Likes)
}

func TestQuestionReplyFailureLeavesThreadAlone(t *testing.T) {
	fake := &boardCompleter{tagOut: `["css"]`, replyErr: errors.New("down")}
	b := newTestBoard(t, fake)

	post := b.SubmitPost(context.Background(), "Why does my flexbox wrap?")

	time.Sleep(100 * time.Millisecond)
	for _, p := range b.Posts() {
		if p.ID == post.ID {
			assert.Empty(t, p.Replies)
		}
	}
}

func TestSubmitReplyOnExistingPost(t *testing.T) {
	fake := &boardCompleter{replyOut: "Promises resolve once; async/await is syntax on top of them."}
	b := newTestBoard(t, fake)
	b.SetUserName("Nadia")

	reply := b.SubmitReply("post-1", "What is the difference between promises and async/await")

	found := func(n int) bool {
		for _, p := range b.Posts() {
			if p.ID == "post-1" {
				return len(p.Replies) == n
			}
		}
		return false
	}
	require.True(t, found(3))
	assert.Equal(t, "Nadia", reply.Author)

	assert.Eventually(t, func() bool { return found(4) }, time.Second, 5*time.Millisecond)
}

func TestBoardPersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	b := NewBoard(openStore(t, dir), &boardCompleter{tagOut: `["general"]`}, zap.NewNop())
	b.SetReplyDelay(10 * time.Millisecond)
	b.SetUserName("Nadia")
	b.SubmitPost(context.Background(), "Hello from my first post")
	b.ToggleFlag("post-2")

	again := NewBoard(openStore(t, dir), &boardCompleter{}, zap.NewNop())
	assert.Equal(t, "Nadia", again.UserName())
	posts := again.Posts()
	require.Len(t, posts, 4)
	assert.Equal(t, "Hello from my first post", posts[0].Content)
	for _, p := range posts {
		if p.ID == "post-2" {
			assert.True(t, p.Flagged)
		}
	}
}

func TestFilterBySearchAndTag(t *testing.T) {
	b := newTestBoard(t, &boardCompleter{})

	byTag := b.Filter("", "react")
	require.Len(t, byTag, 1)
	assert.Equal(t, "Mohamed", byTag[0].Author)

	bySearch := b.Filter("tailwind", "all")
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Amina", bySearch[0].Author)

	both := b.Filter("javascript", "showcase")
	assert.Empty(t, both)

	assert.Len(t, b.Filter("", "all"), 3)
}

func TestBoardTags(t *testing.T) {
	b := newTestBoard(t, &boardCompleter{})
	tags := b.Tags()
	assert.Contains(t, tags, "javascript")
	assert.Contains(t, tags, "showcase")
	assert.Equal(t, "javascript", tags[0])
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("How do I start"))
	assert.True(t, IsQuestion("anyone knows WHAT this is"))
	assert.True(t, IsQuestion("no keywords but a mark?"))
	assert.True(t, IsQuestion("tell me why it fails"))
	assert.False(t, IsQuestion("finished my project today"))
}
