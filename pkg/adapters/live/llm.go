package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ozten/speck/pkg/ports"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
)

// LLM calls the Anthropic messages API over HTTPS.
type LLM struct {
	client *http.Client
}

// NewLLM returns a live LLM adapter with a sane request timeout.
func NewLLM() LLM {
	return LLM{client: &http.Client{Timeout: 2 * time.Minute}}
}

type anthropicRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	Messages  []anthropicMessage  `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Usage   anthropicUsage          `json:"usage"`
}

type anthropicContentBlock struct {
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends req to the Anthropic messages API and blocks until the
// response arrives or ctx is done.
func (l LLM) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return ports.CompletionResponse{}, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("failed to encode Anthropic API request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIURL, bytes.NewReader(body))
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("failed to build Anthropic API request: %w", err)
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("Anthropic API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("failed to read Anthropic API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr anthropicError
		msg := string(respBody)
		if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return ports.CompletionResponse{}, fmt.Errorf("Anthropic API error (%d): %s", resp.StatusCode, msg)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return ports.CompletionResponse{}, fmt.Errorf("failed to parse Anthropic API response: %w", err)
	}

	var text bytes.Buffer
	for _, block := range parsed.Content {
		text.WriteString(block.Text)
	}

	return ports.CompletionResponse{
		Text:             text.String(),
		PromptTokens:     parsed.Usage.InputTokens,
		CompletionTokens: parsed.Usage.OutputTokens,
	}, nil
}
