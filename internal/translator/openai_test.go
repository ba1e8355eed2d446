package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newOpenAITestServer(t *testing.T, respond func(user string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			var req struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			var user string
			for _, m := range req.Messages {
				if m.Role == "user" {
					user = m.Content
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "cmpl-1",
				"object": "chat.completion",
				"choices": []map[string]interface{}{
					{
						"index":         0,
						"finish_reason": "stop",
						"message": map[string]string{
							"role":    "assistant",
							"content": respond(user),
						},
					},
				},
			})
		case "/v1/models":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"object": "list",
				"data":   []map[string]string{{"id": "gpt-4o-mini", "object": "model"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestOpenAIService_TranslateBatch(t *testing.T) {
	srv := newOpenAITestServer(t, func(user string) string {
		if strings.Contains(user, "Hola") {
			return `"Hello world."`
		}
		return "Goodbye."
	})
	defer srv.Close()

	svc := NewOpenAIService(ServiceConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	out, err := svc.TranslateBatch(context.Background(), []string{"Hola mundo.", "Adiós."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 translations, got %d", len(out))
	}
	// Wrapping quotes are an LLM artifact and must be stripped.
	if out[0] != "Hello world." {
		t.Errorf("translation 0: got %q", out[0])
	}
	if out[1] != "Goodbye." {
		t.Errorf("translation 1: got %q", out[1])
	}
}

func TestOpenAIService_EmptyBatch(t *testing.T) {
	svc := NewOpenAIService(ServiceConfig{APIKey: "test-key", BaseURL: "http://localhost:1/v1"})
	out, err := svc.TranslateBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no output, got %v", out)
	}
}

func TestOpenAIService_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewOpenAIService(ServiceConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if _, err := svc.TranslateBatch(context.Background(), []string{"Hola."}); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestOpenAIService_IsAvailable(t *testing.T) {
	srv := newOpenAITestServer(t, func(string) string { return "" })
	defer srv.Close()

	svc := NewOpenAIService(ServiceConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// No API key is rejected before any request is made.
	svc = NewOpenAIService(ServiceConfig{BaseURL: srv.URL + "/v1"})
	if err := svc.IsAvailable(context.Background()); err == nil {
		t.Error("expected error without an API key")
	}
}

func TestOpenAIService_Name(t *testing.T) {
	if got := NewOpenAIService(ServiceConfig{}).Name(); got != "openai" {
		t.Errorf("expected 'openai', got %q", got)
	}
}
