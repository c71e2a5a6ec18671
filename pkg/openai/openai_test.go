package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, reply string, check func(body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  DefaultModel,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{}); err == nil {
		t.Fatal("missing API key accepted")
	}
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t, "  {\"ok\":true}  ", func(body map[string]any) {
		if body["model"] != DefaultModel {
			t.Errorf("model = %v", body["model"])
		}
		rf, ok := body["response_format"].(map[string]any)
		if !ok || rf["type"] != "json_object" {
			t.Errorf("response_format = %v", body["response_format"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Errorf("messages = %v", msgs)
		}
	})
	defer srv.Close()

	client, err := NewOpenAI(OpenAIConfig{APIKey: "test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}

	out, err := client.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		JSONMode:     true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"ok":true}` {
		t.Errorf("reply = %q", out)
	}
}

func TestGenerateEmptyReply(t *testing.T) {
	srv := newTestServer(t, "   ", nil)
	defer srv.Close()

	client, _ := NewOpenAI(OpenAIConfig{APIKey: "test", BaseURL: srv.URL})
	if _, err := client.Generate(context.Background(), GenerateRequest{UserPrompt: "hi"}); err == nil {
		t.Fatal("empty completion accepted")
	}
}
