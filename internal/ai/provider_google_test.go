package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// rawGeminiResponse mirrors the wire shape without the anonymous structs of
// geminiResponse, for easier test construction.
const groundedResponse = `{
	"candidates": [{
		"content": {"parts": [{"text": "{\"ok\":true}"}]},
		"groundingMetadata": {"groundingChunks": [
			{"web": {"uri": "https://ocw.mit.edu/ai", "title": "MIT OCW"}},
			{"web": {"uri": "https://cs.stanford.edu", "title": "Stanford CS"}}
		]}
	}],
	"usageMetadata": {"promptTokenCount": 8, "candidatesTokenCount": 12}
}`

func TestGoogleProvider_Complete(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-3-flash-preview:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing or wrong API key in query")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(groundedResponse))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Messages:         []Message{{Role: "user", Content: "hello"}},
		ResponseMIMEType: "application/json",
		EnableSearch:     true,
		ThinkingBudget:   16000,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != `{"ok":true}` {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.InputTokens != 8 || resp.OutputTokens != 12 {
		t.Errorf("tokens = %d/%d, want 8/12", resp.InputTokens, resp.OutputTokens)
	}
	if len(resp.Grounding) != 2 {
		t.Fatalf("grounding chunks = %d, want 2", len(resp.Grounding))
	}
	if resp.Grounding[0].Title != "MIT OCW" || resp.Grounding[0].URI != "https://ocw.mit.edu/ai" {
		t.Errorf("grounding[0] = %+v", resp.Grounding[0])
	}

	// The search tool and generation config must be on the wire.
	tools, ok := gotBody["tools"].([]any)
	if !ok || len(tools) != 1 {
		t.Fatalf("tools = %v, want one googleSearch tool", gotBody["tools"])
	}
	if _, ok := tools[0].(map[string]any)["googleSearch"]; !ok {
		t.Errorf("tools[0] = %v, want googleSearch", tools[0])
	}
	config, ok := gotBody["generationConfig"].(map[string]any)
	if !ok {
		t.Fatal("generationConfig missing")
	}
	if config["responseMimeType"] != "application/json" {
		t.Errorf("responseMimeType = %v", config["responseMimeType"])
	}
	thinking, ok := config["thinkingConfig"].(map[string]any)
	if !ok || thinking["thinkingBudget"] != float64(16000) {
		t.Errorf("thinkingConfig = %v", config["thinkingConfig"])
	}
}

func TestGoogleProvider_Complete_NoSearchNoTools(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))
	if _, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if _, present := gotBody["tools"]; present {
		t.Errorf("tools sent without EnableSearch: %v", gotBody["tools"])
	}
}

func TestGoogleProvider_Complete_RoleMapping(t *testing.T) {
	var gotBody struct {
		Contents []geminiContent `json:"contents"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))
	_, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: "ignored"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// System is skipped, assistant maps to "model".
	if len(gotBody.Contents) != 2 {
		t.Fatalf("got %d contents, want 2", len(gotBody.Contents))
	}
	if gotBody.Contents[1].Role != "model" {
		t.Errorf("assistant role mapped to %q, want %q", gotBody.Contents[1].Role, "model")
	}
}

func TestGoogleProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))
	_, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestGoogleProvider_Complete_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))
	if _, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hello"}},
	}); err == nil {
		t.Fatal("expected error on empty candidates")
	}
}

func TestGoogleProvider_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", WithGoogleBaseURL(server.URL))
	if err := provider.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}
