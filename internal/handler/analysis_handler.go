package handler

import (
	"errors"
	"net/http"

	"medicue/internal/domain/model"
	"medicue/internal/middleware"
	"medicue/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 症状分析API
type AnalysisHandler struct {
	uc *usecase.AnalysisUsecase
}

// DI
func NewAnalysisHandler(uc *usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/analyze", h.analyze, requireAuth)
}

type analyzeRequest struct {
	SymptomsText string `json:"symptoms_text"`
}

func (h *AnalysisHandler) analyze(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	result, err := h.uc.Analyze(c.Request().Context(), session.UserID, req.SymptomsText)
	if err != nil {
		//AI側の失敗は中身を見せず固定文言
		if errors.Is(err, usecase.ErrAnalysisUnavailable) {
			return c.JSON(http.StatusOK, model.AnalysisError{ErrorMsg: usecase.AnalysisFallbackMessage})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
