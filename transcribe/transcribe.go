// Package transcribe wraps the external speech-transcription boundary:
// send audio bytes, receive text or a typed failure. A single attempt is
// made per call; there is no retry.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// DefaultEndpoint is the hosted Whisper inference endpoint.
const DefaultEndpoint = "https://api-inference.huggingface.co/models/openai/whisper-large-v3"

// ErrNoTranscription reports a success response that carried no text.
// Distinct from a transport failure: the service answered, but emptily.
var ErrNoTranscription = errors.New("no transcription returned")

// TransportError reports a network-level failure or a non-success status
// from the transcription service.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transcription request failed with status %d", e.Status)
	}
	return "transcription request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transcriber turns audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Client implements Transcriber against the Hugging Face inference API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a transcription client. endpoint falls back to
// DefaultEndpoint when empty.
func NewClient(token, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      token,
	}
}

// transcriptionResponse is the subset of the inference response we read.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe implements Transcriber. filename is a hint for the service
// ("recording.wav" when empty).
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "recording.wav"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &TransportError{Status: resp.StatusCode}
	}

	var decoded transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &TransportError{Err: fmt.Errorf("undecodable transcription response: %w", err)}
	}

	if strings.TrimSpace(decoded.Text) == "" {
		return "", ErrNoTranscription
	}

	return decoded.Text, nil
}
