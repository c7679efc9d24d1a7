package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duitku/internal/services"
)

// AnalysisHandler serves per-category monthly spending analysis.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// GetMonthlyAnalysis handles the monthly budget-vs-spend breakdown.
// @Summary     Get monthly analysis
// @Description Break down the authenticated user's budgeted categories against actual spending for the month of the given date
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Date within the month (YYYY-MM-DD)"
// @Success     200 {array} services.CategoryAnalysis "Analysis rows"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No analysis data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analysis [get]
func (h *AnalysisHandler) GetMonthlyAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parseDateQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.analysisService.GetMonthlyAnalysis(userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
