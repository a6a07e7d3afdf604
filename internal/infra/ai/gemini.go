package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// 既定のモデル
const DefaultGeminiModel = "gemini-2.0-flash"

var (
	// 生成結果が空
	ErrEmptyResponse = errors.New("empty ai response")
	// APIキー未設定
	ErrGeneratorDisabled = errors.New("ai generator is not configured")
)

// Gemini API（google.golang.org/genai）で生成する
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// DI
func NewGeminiGenerator(ctx context.Context, apiKey string, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrGeneratorDisabled
	}

	return newGeminiGenerator(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

// modelが空なら既定のモデル
func newGeminiGenerator(ctx context.Context, cc *genai.ClientConfig, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// JSONで返すよう指定して1回呼ぶ
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// APIキーが無いとき用。常に失敗する。
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrGeneratorDisabled
}
