package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceGenerate_ChatCompletions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	s := NewService("openai", "test-key", "gpt-4o-mini")
	s.endpoint = srv.URL

	got, err := s.Generate("prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", got)
}

func TestServiceGenerate_ChatCompletionsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewService("groq", "k", "m")
	s.endpoint = srv.URL

	_, err := s.Generate("prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestServiceGenerate_Ollama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(map[string]string{"response": "local output"})
	}))
	defer srv.Close()

	s := NewService("ollama", "", "llama3")
	s.endpoint = srv.URL

	got, err := s.Generate("prompt")
	require.NoError(t, err)
	assert.Equal(t, "local output", got)
}

func TestServiceGenerate_ProviderNone(t *testing.T) {
	s := NewService("none", "", "")
	_, err := s.Generate("prompt")
	assert.Error(t, err)
}
