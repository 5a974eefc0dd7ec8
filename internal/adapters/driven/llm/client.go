package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// Ensure chatClient implements the interface.
var _ driven.ProviderService = (*chatClient)(nil)

// Generation parameters shared by every backend.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 4000
)

// chatClient performs chat completions against one OpenAI-compatible
// backend. It never retries: retry policy belongs to the caller.
type chatClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	name    string
	timeout time.Duration

	// headers are added to every request, on top of auth and content
	// type.
	headers map[string]string

	// system, when set, is prepended as a system message.
	system string
}

// newChatClient builds a client for one backend. defaults supply the
// base URL and model when the config leaves them empty.
func newChatClient(name, defaultURL, defaultModel string, cfg domain.ProviderConfig, apiKey string) (*chatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCredential, name)
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingEndpoint, name)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(domain.ClampTimeoutSeconds(cfg.TimeoutSeconds)) * time.Second

	return &chatClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		name:    name,
		timeout: timeout,
	}, nil
}

// chatRequest is the chat completions request format.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []chatMsg `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat completions response format. The error
// field covers both the nested and the flat error body shapes seen
// across backends.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Generate produces text completion from a prompt.
func (c *chatClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]chatMsg, 0, 2)
	if c.system != "" {
		messages = append(messages, chatMsg{Role: "system", Content: c.system})
	}
	messages = append(messages, chatMsg{Role: "user", Content: prompt})

	jsonBody, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", c.classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &domain.RateLimitError{}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrMalformedResponse, c.name)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: %s returned no completion content", domain.ErrMalformedResponse, c.name)
	}
	return chatResp.Choices[0].Message.Content, nil
}

// classifyTransport distinguishes timeouts from other transport
// failures.
func (c *chatClient) classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Timeout: c.timeout}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &domain.TimeoutError{Timeout: c.timeout}
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrNetwork, c.name, err)
}

// errorMessage pulls a human-readable message out of an error body,
// falling back to the HTTP status line.
func errorMessage(body []byte, status string) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return status
}
