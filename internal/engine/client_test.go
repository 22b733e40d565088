package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.EngineConfig{
		URL:         server.URL,
		Timeout:     5,
		MaxTokens:   64,
		Temperature: 0.1,
	}
	return NewClient(cfg, logging.Default())
}

func TestComplete(t *testing.T) {
	var gotReq completionRequest

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/completion" {
			t.Errorf("path = %q, want /completion", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse{ //nolint:errcheck // test handler
			Content:         `{"device": "lights", "action": "turn on"}`,
			TokensPredicted: 14,
		})
	}))

	result, err := client.Complete(context.Background(), "turn on the lights", "root ::= \"x\"")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if result.Content != `{"device": "lights", "action": "turn on"}` {
		t.Errorf("Content = %q", result.Content)
	}
	if result.Tokens != 14 {
		t.Errorf("Tokens = %d, want 14", result.Tokens)
	}

	if gotReq.Prompt != "turn on the lights" {
		t.Errorf("request prompt = %q", gotReq.Prompt)
	}
	if gotReq.Grammar != "root ::= \"x\"" {
		t.Errorf("request grammar = %q", gotReq.Grammar)
	}
	if gotReq.NPredict != 64 {
		t.Errorf("request n_predict = %d, want 64", gotReq.NPredict)
	}
	if gotReq.Stream {
		t.Error("request should not enable streaming")
	}
}

func TestComplete_NoGrammar(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if _, ok := req["grammar"]; ok {
			t.Error("empty grammar should be omitted from the request")
		}
		json.NewEncoder(w).Encode(completionResponse{Content: "free text"}) //nolint:errcheck // test handler
	}))

	result, err := client.Complete(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if result.Content != "free text" {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestComplete_ServerError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))

	_, err := client.Complete(context.Background(), "hello", "")
	if err == nil {
		t.Fatal("Complete() expected error for 503 response")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("error = %v, want ErrRequestFailed", err)
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(completionResponse{Content: ""}) //nolint:errcheck // test handler
	}))

	_, err := client.Complete(context.Background(), "hello", "")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion", err)
	}
}

func TestComplete_Unreachable(t *testing.T) {
	cfg := config.EngineConfig{
		URL:     "http://127.0.0.1:59999",
		Timeout: 1,
	}
	client := NewClient(cfg, logging.Default())

	_, err := client.Complete(context.Background(), "hello", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestHealthCheck(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("error = %v, want ErrRequestFailed", err)
	}
}
