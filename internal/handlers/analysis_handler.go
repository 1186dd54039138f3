package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/schemas"
	"alfredoptarigan/resume-screener/internal/services"
)

type AnalysisHandler struct {
	aggregator services.BatchAggregator
	validate   *validator.Validate
}

func NewAnalysisHandler(aggregator services.BatchAggregator) *AnalysisHandler {
	return &AnalysisHandler{
		aggregator: aggregator,
		validate:   newValidator(),
	}
}

// HandleBatchAnalysis handles POST /batch-analysis
func (h *AnalysisHandler) HandleBatchAnalysis(c *fiber.Ctx) error {
	var req models.BatchAnalysisRequest
	if err := parseBody(c, h.validate, schemas.BatchAnalysisRequest, &req); err != nil {
		return respondError(c, err)
	}

	analysis, err := h.aggregator.Analyze(c.UserContext(), req.ResumesData)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.BatchAnalysisResponse{
		Success:  true,
		Analysis: analysis,
	})
}
