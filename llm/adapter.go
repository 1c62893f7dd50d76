// Package llm wraps the external chat-completion boundary. The application
// sends a role-tagged message list plus generation options and receives one
// text completion or a typed failure; it contributes no model logic of its
// own.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a role-tagged chat message
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Request carries a single completion request. Prior holds earlier
// conversational turns, oldest first; it is empty for one-shot features.
type Request struct {
	System      string
	Prior       []Message
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer issues one completion attempt. No retry is performed at this
// layer; re-issuing is always a new user action.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// TransportError reports a network-level failure or a non-success status
// from the completion service. Status is zero when the request never
// reached the service.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion request failed with status %d", e.Status)
	}
	return "completion request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrEmptyCompletion reports a success response that carried no usable
// completion text.
var ErrEmptyCompletion = errors.New("no completion returned")
