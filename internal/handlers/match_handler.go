package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/schemas"
	"alfredoptarigan/resume-screener/internal/services"
)

type MatchHandler struct {
	matcher   services.JobMatcher
	matchRepo repositories.JobMatchRepository
	validate  *validator.Validate
}

func NewMatchHandler(matcher services.JobMatcher, matchRepo repositories.JobMatchRepository) *MatchHandler {
	return &MatchHandler{
		matcher:   matcher,
		matchRepo: matchRepo,
		validate:  newValidator(),
	}
}

// HandleJobMatch handles POST /job-match
func (h *MatchHandler) HandleJobMatch(c *fiber.Ctx) error {
	var req models.JobMatchRequest
	if err := parseBody(c, h.validate, schemas.JobMatchRequest, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.matcher.Match(c.UserContext(), services.MatchInput{
		JobDescription: req.JobDescription,
		JobTitle:       req.JobTitle,
		Candidates:     req.Candidates,
	})
	if err != nil {
		return respondError(c, err)
	}

	if h.matchRepo != nil {
		if err := h.matchRepo.Create(result); err != nil {
			log.Printf("⚠️ Failed to persist job match %s: %v", result.ID, err)
		}
	}

	return c.JSON(models.JobMatchResponse{
		Success: true,
		Result:  result,
	})
}
