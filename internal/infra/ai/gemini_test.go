package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// generateContentの最小のレスポンス
func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *GeminiGenerator {
	t.Helper()
	return newTestGeneratorWithModel(t, "", handler)
}

func newTestGeneratorWithModel(t *testing.T, model string, handler http.HandlerFunc) *GeminiGenerator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := newGeminiGenerator(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	}, model)
	require.NoError(t, err)
	return g
}

func TestGeminiGenerator_Generate(t *testing.T) {
	var gotPath string
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiReply(`{"recommendations":"Rest.","is_emergency":false}`))
	})

	text, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Contains(t, text, "Rest.")
	assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultGeminiModel+":generateContent"), gotPath)
}

// 空のモデル名は既定モデルになる
func TestGeminiGenerator_DefaultModel(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Equal(t, DefaultGeminiModel, g.model)

	var gotPath string
	custom := newTestGeneratorWithModel(t, "gemini-custom", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiReply("ok"))
	})
	_, err := custom.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-custom:generateContent"), gotPath)
}

func TestGeminiGenerator_EmptyText(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiReply("   "))
	})

	_, err := g.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiGenerator_APIError(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := g.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestNewGeminiGenerator_NoKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), " ", "")
	assert.ErrorIs(t, err, ErrGeneratorDisabled)

	_, err = DisabledGenerator{}.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrGeneratorDisabled)
}
