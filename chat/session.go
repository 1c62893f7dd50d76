// Package chat implements the conversational assistant page: a persisted
// message history and the send orchestrator that turns user input into an
// assistant turn. The user must always see something for every send, so
// any failure commits a fixed fallback message instead of surfacing an
// error state.
package chat

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"darijacode/llm"
	"darijacode/store"
)

// StoreKey is the durable key backing the chat history.
const StoreKey = "chatMessages"

// WelcomeContent greets a user with no prior history.
const WelcomeContent = "Marhaba! I'm your DarijaCode assistant. Ask me any coding question in Darija, Arabic, French, or English!"

const (
	fallbackContent = "Sorry, there was an error processing your request. Please make sure your API key is set up correctly."
	emptyContent    = "Sorry, I couldn't process that request."

	maxTokens   = 1024
	temperature = 0.7
)

// Message is one chat turn. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds the chat collection and mirrors every change to the store.
type Session struct {
	store     *store.Store
	completer llm.Completer
	logger    *zap.Logger

	mu       sync.Mutex
	language string
	messages []Message
}

// NewSession loads the persisted history, synthesizing the welcome message
// when none exists.
func NewSession(s *store.Store, completer llm.Completer, logger *zap.Logger, language string) *Session {
	session := &Session{
		store:     s,
		completer: completer,
		logger:    logger,
		language:  language,
	}

	session.messages = store.Load(s, StoreKey, []Message(nil))
	if len(session.messages) == 0 {
		session.messages = []Message{{
			ID:        "welcome",
			Role:      "assistant",
			Content:   WelcomeContent,
			Timestamp: time.Now(),
		}}
		session.persist()
	}

	return session
}

// Messages returns a copy of the current history, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetLanguage selects the assistant's response language for later sends.
func (s *Session) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
}

// Language returns the currently selected response language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Send commits the user's turn, requests a completion with the prior
// conversation as context, and commits the assistant's turn. On any
// failure a fixed fallback message is committed instead; the returned
// message is always part of the history.
func (s *Session) Send(ctx context.Context, input string) Message {
	s.mu.Lock()
	prior := make([]llm.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		prior = append(prior, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	language := s.language

	s.messages = append(s.messages, Message{
		ID:        newID(),
		Role:      "user",
		Content:   input,
		Timestamp: time.Now(),
	})
	s.persist()
	s.mu.Unlock()

	content, err := s.completer.Complete(ctx, llm.Request{
		System:      llm.AssistantSystemPrompt(language),
		Prior:       prior,
		User:        input,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})

	switch {
	case errors.Is(err, llm.ErrEmptyCompletion):
		content = emptyContent
	case err != nil:
		s.logger.Warn("chat completion failed", zap.Error(err))
		content = fallbackContent
	}

	reply := Message{
		ID:        newID(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, reply)
	s.persist()
	s.mu.Unlock()

	return reply
}

// persist mirrors the history to the store. Callers hold the lock.
func (s *Session) persist() {
	if err := store.Save(s.store, StoreKey, s.messages); err != nil {
		s.logger.Warn("failed to persist chat history", zap.Error(err))
	}
}

// newID returns a fresh time-derived message id.
func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
