package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"backend/config"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the seam the workflows depend on; tests stub it. An empty
// model falls back to the client's configured one.
type Completer interface {
	Chat(messages []ChatMessage, temperature float64, model string) (string, error)
	Model() string
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []ChatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// CompletionClient talks to an OpenAI-compatible chat-completions endpoint
// in strict JSON-object mode. Configuration is passed in at construction,
// not read from the environment at call time.
type CompletionClient struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

func NewCompletionClient(cfg config.OpenAIConfig) *CompletionClient {
	return &CompletionClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *CompletionClient) Model() string {
	if c.cfg.Model == "" {
		return config.DefaultModel
	}
	return c.cfg.Model
}

func (c *CompletionClient) Chat(messages []ChatMessage, temperature float64, model string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrAPIKeyMissing
	}
	if model == "" {
		model = c.Model()
	}

	reqBody := chatRequest{
		Model:          model,
		Messages:       messages,
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: "no response choices returned"}
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		content = "{}"
	}
	return content, nil
}
