package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"medicue/internal/domain/model"

	"github.com/rs/zerolog"
)

// AI呼び出しの失敗（中身はユーザーに見せない）
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// ユーザーに返す固定文言
const AnalysisFallbackMessage = "Please try again later or consult a professional."

// 症状テキストの上限
const maxSymptomsLen = 4000

// プロンプトを渡して生成テキストを受け取る約束
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AnalysisUsecase struct {
	generator TextGenerator
	logger    zerolog.Logger
}

// DI
func NewAnalysisUsecase(generator TextGenerator, logger zerolog.Logger) *AnalysisUsecase {
	return &AnalysisUsecase{
		generator: generator,
		logger:    logger,
	}
}

// 1回だけ呼ぶ。リトライはしない。
func (u *AnalysisUsecase) Analyze(ctx context.Context, userID int64, symptomsText string) (model.AnalysisResult, error) {
	symptoms := strings.TrimSpace(symptomsText)
	if symptoms == "" {
		return model.AnalysisResult{}, NewHTTPError(http.StatusBadRequest, "No symptoms provided")
	}
	if len(symptoms) > maxSymptomsLen {
		return model.AnalysisResult{}, NewHTTPError(http.StatusBadRequest, "symptoms_text is too long")
	}

	text, err := u.generator.Generate(ctx, BuildAnalysisPrompt(symptoms))
	if err != nil {
		u.logger.Warn().Err(err).Int64("user_id", userID).Msg("ai generate failed")
		return model.AnalysisResult{}, ErrAnalysisUnavailable
	}

	result, err := DecodeAnalysis(text)
	if err != nil {
		u.logger.Warn().Err(err).Int64("user_id", userID).Int("response_len", len(text)).Msg("ai response not parseable")
		return model.AnalysisResult{}, ErrAnalysisUnavailable
	}

	return result, nil
}

// 症状を埋め込んだプロンプト
func BuildAnalysisPrompt(symptoms string) string {
	return fmt.Sprintf(`You are a professional Medical Assistant AI.
Analyze the following symptoms: %q

You MUST return only a valid JSON object with this exact structure:
{
    "possible_conditions": [
        {"name": "Condition Name", "confidence": "0-100%%"}
    ],
    "recommendations": "Detailed medical advice and next steps.",
    "is_emergency": true
}

Guidelines:
- If symptoms include chest pain or difficulty breathing, set "is_emergency" to true, otherwise false.
- Provide recommendations based on standard clinical guidelines.
- Do not include any text before or after the JSON.
`, symptoms)
}
