package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"support-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderChat(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Salam"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "earlier"},
		{Role: llm.RoleUser, Content: "hi"},
	}, llm.WithMaxTokens(32))
	require.NoError(t, err)
	assert.Equal(t, "Salam", reply)

	assert.Equal(t, "llama3", captured.Model)
	assert.False(t, captured.Stream)
	assert.Equal(t, llm.RoleAssistant, captured.Messages[0].Role)
	require.NotNil(t, captured.Options)
	assert.Equal(t, 32, captured.Options.NumPredict)
}

func TestOllamaProviderErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantEmpty bool
	}{
		{"non-success status", http.StatusNotFound, `model not found`, false},
		{"error field", http.StatusOK, `{"error":"model not loaded"}`, false},
		{"malformed payload", http.StatusOK, `{`, false},
		{"missing message", http.StatusOK, `{"done":true}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi")
			require.Error(t, err)
			assert.Equal(t, tt.wantEmpty, err == llm.ErrEmptyResponse)
		})
	}
}
