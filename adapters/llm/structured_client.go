package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ruleforge/internal/config"
)

// DefaultTimeout bounds one generation call end to end.
const DefaultTimeout = 120 * time.Second

// StructuredClient provides typed JSON responses from chat-completion
// calls. The response is forced into a single JSON object and decoded
// into T; anything else is an error for the caller to classify.
type StructuredClient[T any] struct {
	APIKey        string
	BaseURL       string
	Model         string
	SystemContext string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
	HTTPClient    *http.Client
}

// responseFormat forces structured output from the model.
type responseFormat struct {
	Type string `json:"type"` // "json_object"
}

// NewStructuredClient creates a client from AI configuration.
func NewStructuredClient[T any](cfg config.AIConfig) *StructuredClient[T] {
	log.Printf("[StructuredClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d",
		cfg.OpenAIModel, cfg.Temperature, cfg.MaxTokens)

	return &StructuredClient[T]{
		APIKey:        cfg.OpenAIKey,
		BaseURL:       cfg.BaseURL,
		Model:         cfg.OpenAIModel,
		SystemContext: cfg.SystemContext,
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
		Timeout:       DefaultTimeout,
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
	}
}

// GetJSONResponse makes one chat-completion call and parses the JSON
// content into T.
func (c *StructuredClient[T]) GetJSONResponse(ctx context.Context, prompt string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type requestBody struct {
		Model               string         `json:"model"`
		Messages            []message      `json:"messages"`
		Temperature         float64        `json:"temperature,omitempty"`
		MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
		ResponseFormat      responseFormat `json:"response_format"`
	}

	reqBody := requestBody{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: c.SystemContext},
			{Role: "user", Content: prompt},
		},
		Temperature:         c.Temperature,
		MaxCompletionTokens: c.MaxTokens,
		ResponseFormat:      responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	log.Printf("[StructuredClient] Sending request to %s - promptLength=%d, temp=%.2f",
		c.Model, len(prompt), c.Temperature)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request timeout after %v: %w", c.Timeout, err)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation API error (status %d): %s", resp.StatusCode, string(body))
	}

	type completionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse completion envelope: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := cleanJSONContent(completion.Choices[0].Message.Content)
	log.Printf("[StructuredClient] Response content length: %d bytes", len(content))

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON content into result type: %w", err)
	}
	return &result, nil
}

// cleanJSONContent strips markdown code fences and leading chatter a
// model may wrap around the JSON object despite the response format.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Trim any prefix chatter before the first JSON object.
	if !strings.HasPrefix(content, "{") {
		if idx := strings.Index(content, "{"); idx > 0 {
			content = content[idx:]
		}
	}

	return content
}
