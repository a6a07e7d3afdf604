package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: TextGenerator
// =====================

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestAnalyze_Success(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `"headache and fever"`)
	})).Return(`{"possible_conditions":[{"name":"Flu","confidence":"60%"}],"recommendations":"Rest.","is_emergency":false}`, nil)

	uc := NewAnalysisUsecase(gen, zerolog.Nop())
	got, err := uc.Analyze(context.Background(), 1, "  headache and fever ")
	require.NoError(t, err)

	assert.Equal(t, "Flu", got.PossibleConditions[0].Name)
	assert.Equal(t, "Rest.", got.Recommendations)
	gen.AssertExpectations(t)
}

// 空の症状は400（AIを呼ばない）
func TestAnalyze_EmptySymptoms(t *testing.T) {
	gen := new(MockTextGenerator)
	uc := NewAnalysisUsecase(gen, zerolog.Nop())

	for _, s := range []string{"", "   "} {
		_, err := uc.Analyze(context.Background(), 1, s)

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Equal(t, "No symptoms provided", he.Message)
	}
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAnalyze_TooLong(t *testing.T) {
	gen := new(MockTextGenerator)
	uc := NewAnalysisUsecase(gen, zerolog.Nop())

	_, err := uc.Analyze(context.Background(), 1, strings.Repeat("a", maxSymptomsLen+1))
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// AIの失敗もパース失敗も同じエラーにまとめる
func TestAnalyze_Unavailable(t *testing.T) {
	cases := map[string]func(g *MockTextGenerator){
		"generate error": func(g *MockTextGenerator) {
			g.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))
		},
		"unparseable": func(g *MockTextGenerator) {
			g.On("Generate", mock.Anything, mock.Anything).Return("sorry, I cannot help", nil)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			gen := new(MockTextGenerator)
			setup(gen)

			_, err := NewAnalysisUsecase(gen, zerolog.Nop()).Analyze(context.Background(), 1, "cough")
			assert.ErrorIs(t, err, ErrAnalysisUnavailable)
			gen.AssertNumberOfCalls(t, "Generate", 1)
		})
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	p := BuildAnalysisPrompt(`chest "pain"`)
	assert.Contains(t, p, `"chest \"pain\""`)
	assert.Contains(t, p, `"confidence": "0-100%"`)
	assert.Contains(t, p, "is_emergency")
}
