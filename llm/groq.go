package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the completion model used for every feature.
const DefaultModel = "llama3-70b-8192"

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements Completer against Groq's OpenAI-compatible API.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient creates a completion client. baseURL and model fall back to
// the Groq defaults when empty.
func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Model returns the configured model identifier.
func (c *GroqClient) Model() string {
	return c.model
}

// Complete implements Completer. A single attempt: transport and status
// failures surface as *TransportError, a success with no choices as
// ErrEmptyCompletion.
func (c *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Prior)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, msg := range req.Prior {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &TransportError{Status: apiErr.HTTPStatusCode, Err: err}
		}
		return "", &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
