package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"darijacode/llm"
	"darijacode/store"
)

// fakeCompleter records requests and plays back a scripted response.
type fakeCompleter struct {
	lastRequest llm.Request
	response    string
	err         error
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.lastRequest = req
	return f.response, f.err
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewSessionSynthesizesWelcome(t *testing.T) {
	s := newTestStore(t)

	session := NewSession(s, &fakeCompleter{}, zap.NewNop(), llm.LangEnglish)

	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "welcome", messages[0].ID)
	assert.Equal(t, "assistant", messages[0].Role)
	assert.Equal(t, WelcomeContent, messages[0].Content)

	// The synthesized welcome is immediately durable.
	persisted := store.Load(s, StoreKey, []Message(nil))
	assert.Len(t, persisted, 1)
}

func TestSendCommitsBothTurns(t *testing.T) {
	s := newTestStore(t)
	completer := &fakeCompleter{response: "Use flexbox: justify-content and align-items set to center."}
	session := NewSession(s, completer, zap.NewNop(), llm.LangEnglish)

	reply := session.Send(context.Background(), "How do I center a div?")

	assert.Equal(t, "assistant", reply.Role)
	assert.Equal(t, completer.response, reply.Content)

	messages := session.Messages()
	require.Len(t, messages, 3) // welcome, user, assistant
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "How do I center a div?", messages[1].Content)

	persisted := store.Load(s, StoreKey, []Message(nil))
	assert.Len(t, persisted, 3)
}

func TestSendPassesPriorTurnsAndLanguage(t *testing.T) {
	s := newTestStore(t)
	completer := &fakeCompleter{response: "wakha"}
	session := NewSession(s, completer, zap.NewNop(), llm.LangDarija)

	session.Send(context.Background(), "chnou hiya variable?")

	req := completer.lastRequest
	assert.Equal(t, llm.AssistantSystemPrompt(llm.LangDarija), req.System)
	require.Len(t, req.Prior, 1) // the welcome turn
	assert.Equal(t, "assistant", req.Prior[0].Role)
	assert.Equal(t, "chnou hiya variable?", req.User)
	assert.Equal(t, 1024, req.MaxTokens)
}

func TestSendTransportFailureCommitsFallback(t *testing.T) {
	s := newTestStore(t)
	completer := &fakeCompleter{err: &llm.TransportError{Status: 500}}
	session := NewSession(s, completer, zap.NewNop(), llm.LangEnglish)

	reply := session.Send(context.Background(), "hello?")

	assert.Equal(t, fallbackContent, reply.Content)
	assert.Len(t, session.Messages(), 3)
}

func TestSendEmptyCompletionCommitsPlaceholder(t *testing.T) {
	s := newTestStore(t)
	completer := &fakeCompleter{err: llm.ErrEmptyCompletion}
	session := NewSession(s, completer, zap.NewNop(), llm.LangEnglish)

	reply := session.Send(context.Background(), "hello?")

	assert.Equal(t, emptyContent, reply.Content)
}

func TestSessionReloadsPersistedHistory(t *testing.T) {
	s := newTestStore(t)
	first := NewSession(s, &fakeCompleter{response: "salam!"}, zap.NewNop(), llm.LangEnglish)
	first.Send(context.Background(), "salam")

	second := NewSession(s, &fakeCompleter{}, zap.NewNop(), llm.LangEnglish)

	messages := second.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "salam!", messages[2].Content)
}

func TestSendWrappedTransportError(t *testing.T) {
	s := newTestStore(t)
	wrapped := &llm.TransportError{Err: errors.New("connection refused")}
	session := NewSession(s, &fakeCompleter{err: wrapped}, zap.NewNop(), llm.LangEnglish)

	reply := session.Send(context.Background(), "anyone there?")

	assert.Equal(t, fallbackContent, reply.Content)
}
