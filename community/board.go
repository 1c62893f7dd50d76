package community

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"darijacode/extract"
	"darijacode/llm"
	"darijacode/schema"
	"darijacode/store"
)

const (
	// PostsKey is the store key holding the post collection.
	PostsKey = "communityPosts"
	// UserNameKey is the store key holding the chosen display name.
	UserNameKey = "communityUserName"

	// AIAuthor is the display name used for scheduled assistant replies.
	AIAuthor = "AI Assistant"

	// DefaultReplyDelay is how long a generated reply waits before it is
	// merged into the thread.
	DefaultReplyDelay = 2 * time.Second
)

const tagSystemPrompt = "You are a tagging assistant for DarijaCode Hub community. " +
	"Generate 2-3 relevant tags for the given post. " +
	"Return only a JSON array of strings, e.g. [\"javascript\", \"beginner\"]."

const replySystemPrompt = "You are DarijaCode Hub's community assistant helping Moroccan developers. " +
	"Keep your responses friendly, helpful and concise (max 2-3 paragraphs). " +
	"If the user is speaking in Darija (Moroccan dialect), respond in Darija using Latin script when appropriate."

// Board owns the forum state. All reads and mutations go through its lock,
// so a reply scheduled before the user liked or flagged something still
// merges into the thread as it stands when the delay fires.
type Board struct {
	store      *store.Store
	completer  llm.Completer
	logger     *zap.Logger
	replyDelay time.Duration

	mu       sync.Mutex
	posts    []Post
	userName string
}

// NewBoard loads the persisted posts and user name, seeding the defaults
// when nothing has been stored yet.
func NewBoard(s *store.Store, completer llm.Completer, logger *zap.Logger) *Board {
	b := &Board{
		store:      s,
		completer:  completer,
		logger:     logger,
		replyDelay: DefaultReplyDelay,
	}
	b.posts = store.Load(s, PostsKey, SeedPosts())
	b.userName = store.Load(s, UserNameKey, "")
	return b
}

// SetReplyDelay overrides how long generated replies wait before merging.
func (b *Board) SetReplyDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replyDelay = d
}

// Posts returns a snapshot of the current collection.
func (b *Board) Posts() []Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clonePosts(b.posts)
}

// UserName returns the stored display name, which may be empty until
// SetUserName has been called.
func (b *Board) UserName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userName
}

// SetUserName records and persists the display name used for new posts
// and replies.
func (b *Board) SetUserName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userName = strings.TrimSpace(name)
	if err := store.Save(b.store, UserNameKey, b.userName); err != nil {
		b.logger.Warn("persist user name", zap.Error(err))
	}
}

// SubmitPost commits a new post immediately and, when the content reads
// like a question, schedules an assistant reply behind the board's delay.
// Tag generation is best effort: any failure falls back to ["general"].
func (b *Board) SubmitPost(ctx context.Context, content string) Post {
	post := Post{
		ID:        fmt.Sprintf("post-%d", time.Now().UnixMilli()),
		Author:    b.UserName(),
		Content:   content,
		Timestamp: "Just now",
		Replies:   []Reply{},
		Tags:      b.generateTags(ctx, content),
	}
	b.apply(func(posts []Post) []Post { return PrependPost(posts, post) })
	if IsQuestion(content) {
		b.scheduleAIReply(post.ID, content)
	}
	return post
}

// SubmitReply commits a new reply under the given post immediately and,
// when the content reads like a question, schedules an assistant reply
// on the same thread.
func (b *Board) SubmitReply(postID, content string) Reply {
	reply := Reply{
		ID:        fmt.Sprintf("reply-%s-%d", postID, time.Now().UnixMilli()),
		Author:    b.UserName(),
		Content:   content,
		Timestamp: "Just now",
	}
	b.apply(func(posts []Post) []Post { return AppendReply(posts, postID, reply) })
	if IsQuestion(content) {
		b.scheduleAIReply(postID, content)
	}
	return reply
}

// ToggleLike flips this client's like on a post.
func (b *Board) ToggleLike(id string) {
	b.apply(func(posts []Post) []Post { return ToggleLike(posts, id) })
}

// ToggleReplyLike flips this client's like on a reply.
func (b *Board) ToggleReplyLike(postID, replyID string) {
	b.apply(func(posts []Post) []Post { return ToggleReplyLike(posts, postID, replyID) })
}

// ToggleFlag flips the moderation flag on a post.
func (b *Board) ToggleFlag(id string) {
	b.apply(func(posts []Post) []Post { return ToggleFlag(posts, id) })
}

// Filter returns the posts matching a free-text search and a tag. An
// empty search matches everything; tag "all" or "" disables the tag
// filter. The search covers content, author and tags, case-insensitively.
func (b *Board) Filter(search, tag string) []Post {
	posts := b.Posts()
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if tag != "" && tag != "all" && !hasTag(p, tag) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Tags returns every tag in use, in first-seen order.
func (b *Board) Tags() []string {
	posts := b.Posts()
	seen := make(map[string]bool)
	var out []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// IsQuestion reports whether content should trigger an assistant reply.
// It matches a question mark or the words how, what or why in any case.
func IsQuestion(content string) bool {
	if strings.Contains(content, "?") {
		return true
	}
	lower := strings.ToLower(content)
	return strings.Contains(lower, "how") ||
		strings.Contains(lower, "what") ||
		strings.Contains(lower, "why")
}

// apply runs a pure mutator against the current collection under the
// board lock and persists the result.
func (b *Board) apply(mutate func([]Post) []Post) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.posts = mutate(b.posts)
	if err := store.Save(b.store, PostsKey, b.posts); err != nil {
		b.logger.Warn("persist posts", zap.Error(err))
	}
}

func (b *Board) generateTags(ctx context.Context, content string) []string {
	requestID := uuid.NewString()
	raw, err := b.completer.Complete(ctx, llm.Request{
		System:      tagSystemPrompt,
		User:        "Generate tags for this community post: " + content,
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		b.logger.Warn("tag generation failed",
			zap.String("request_id", requestID), zap.Error(err))
		return []string{"general"}
	}
	v, err := extract.Decode(raw)
	if err != nil {
		b.logger.Warn("tag payload unreadable",
			zap.String("request_id", requestID), zap.Error(err))
		return []string{"general"}
	}
	return schema.Tags(v, "general", 3)
}

// scheduleAIReply requests a completion in the background and, on
// success, merges the reply into the thread after the board's delay. The
// request outlives the submitting call on purpose: navigating away from
// the page must not cancel a reply already underway.
func (b *Board) scheduleAIReply(postID, prompt string) {
	requestID := uuid.NewString()
	delay := b.currentDelay()
	go func() {
		content, err := b.completer.Complete(context.Background(), llm.Request{
			System:      replySystemPrompt,
			User:        prompt,
			MaxTokens:   512,
			Temperature: 0.7,
		})
		if err != nil {
			b.logger.Warn("community auto-reply failed",
				zap.String("request_id", requestID),
				zap.String("post_id", postID),
				zap.Error(err))
			return
		}
		reply := Reply{
			ID:        fmt.Sprintf("reply-%s-%d", postID, time.Now().UnixMilli()),
			Author:    AIAuthor,
			Content:   content,
			Timestamp: "Just now",
			IsAI:      true,
		}
		time.AfterFunc(delay, func() {
			b.apply(func(posts []Post) []Post { return AppendReply(posts, postID, reply) })
			b.logger.Debug("community auto-reply merged",
				zap.String("request_id", requestID),
				zap.String("post_id", postID))
		})
	}()
}

func (b *Board) currentDelay() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replyDelay
}

func hasTag(p Post, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func matchesSearch(p Post, lowered string) bool {
	if strings.Contains(strings.ToLower(p.Content), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Author), lowered) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), lowered) {
			return true
		}
	}
	return false
}
