package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGroqClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk-test" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama-3.3-70b-versatile" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected one user message, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"test_suites": []}`}},
			},
		})
	}))
	defer server.Close()

	client := NewGroqClient(server.URL, "gsk-test", "llama-3.3-70b-versatile")
	out, err := client.Complete(context.Background(), "generate tests")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"test_suites": []}` {
		t.Errorf("unexpected completion %q", out)
	}
}

func TestGroqClient_Complete_MissingKey(t *testing.T) {
	client := NewGroqClient("http://unused", "", "model")
	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGroqClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	client := NewGroqClient(server.URL, "gsk-test", "model")
	_, err := client.Complete(context.Background(), "prompt")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("unexpected status %d", apiErr.Status)
	}
	if apiErr.Message != "rate limit exceeded" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestGroqClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewGroqClient(server.URL, "gsk-test", "model")
	_, err := client.Complete(context.Background(), "prompt")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}
