package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
)

// maxResponseBytes caps how much of a completion response we read.
// Grammar-constrained output is short; anything past this is a misbehaving server.
const maxResponseBytes = 1 << 20

// Client talks to a llama.cpp-compatible completion server.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Client struct {
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *logging.Logger
}

// Result holds a completion and its generation metadata.
type Result struct {
	// Content is the raw generated text.
	Content string

	// Tokens is the number of tokens the engine generated.
	Tokens int

	// Duration is the round-trip time for the request.
	Duration time.Duration
}

// NewClient creates a new engine client from configuration.
func NewClient(cfg config.EngineConfig, logger *logging.Logger) *Client {
	return &Client{
		baseURL:     cfg.URL,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger.With("component", "engine"),
	}
}

// completionRequest is the llama.cpp /completion request body.
type completionRequest struct {
	Prompt      string  `json:"prompt"`
	Grammar     string  `json:"grammar,omitempty"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

// completionResponse is the subset of the llama.cpp /completion response we use.
type completionResponse struct {
	Content         string `json:"content"`
	TokensPredicted int    `json:"tokens_predicted"`
}

// Complete sends a prompt to the engine and returns the generated text.
//
// When grammar is non-empty the engine constrains sampling to strings the
// grammar can produce. An empty grammar means unconstrained generation.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - prompt: Full prompt text including any instruction framing
//   - grammar: GBNF grammar text, or empty for unconstrained output
//
// Returns:
//   - *Result: Generated content and metadata
//   - error: ErrUnavailable, ErrRequestFailed, or ErrEmptyCompletion
func (c *Client) Complete(ctx context.Context, prompt, grammar string) (*Result, error) {
	reqBody := completionRequest{
		Prompt:      prompt,
		Grammar:     grammar,
		NPredict:    c.maxTokens,
		Temperature: c.temperature,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshalling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck // best effort error detail
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, string(body))
	}

	var compResp completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&compResp); err != nil {
		return nil, fmt.Errorf("decoding completion response: %w", err)
	}

	if compResp.Content == "" {
		return nil, ErrEmptyCompletion
	}

	result := &Result{
		Content:  compResp.Content,
		Tokens:   compResp.TokensPredicted,
		Duration: time.Since(start),
	}

	c.logger.Debug("completion finished",
		"tokens", result.Tokens,
		"duration_ms", result.Duration.Milliseconds(),
		"constrained", grammar != "",
	)

	return result, nil
}

// HealthCheck verifies the engine server is up and ready to serve.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrRequestFailed, resp.StatusCode)
	}
	return nil
}
