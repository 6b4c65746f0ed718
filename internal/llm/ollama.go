package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultOllamaURL is the local Ollama server address.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaClient implements Generator against the Ollama chat API.
type OllamaClient struct {
	baseURL string
	client  *http.Client
}

// NewOllamaClient creates a client for the given server URL. An empty URL
// selects the local default.
func NewOllamaClient(baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return &OllamaClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error"`
}

// Generate sends a single-turn chat request to the named model.
func (c *OllamaClient) Generate(ctx context.Context, model string, prompt string) (string, error) {
	payload := ollamaChatRequest{
		Model:    model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama unavailable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}

	// The server reports missing models and resource problems through the
	// error field with a non-200 status.
	if resp.StatusCode != http.StatusOK {
		if chatResp.Error != "" {
			return "", fmt.Errorf("ollama error for model %s: %s", model, chatResp.Error)
		}
		return "", fmt.Errorf("ollama request for model %s failed with status %d", model, resp.StatusCode)
	}

	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	return chatResp.Message.Content, nil
}
