package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// ResultHandler serves stored results. Any dependency may be nil when its backend is disabled.
type ResultHandler struct {
	resumeRepo repositories.ResumeRepository
	matchRepo  repositories.JobMatchRepository
	index      services.CandidateIndex
}

func NewResultHandler(
	resumeRepo repositories.ResumeRepository,
	matchRepo repositories.JobMatchRepository,
	index services.CandidateIndex,
) *ResultHandler {
	return &ResultHandler{
		resumeRepo: resumeRepo,
		matchRepo:  matchRepo,
		index:      index,
	}
}

// HandleGetResume handles GET /resumes/:id
func (h *ResultHandler) HandleGetResume(c *fiber.Ctx) error {
	if h.resumeRepo == nil {
		return unavailable(c, "resume storage is disabled")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	result, err := h.resumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// HandleGetJobMatch handles GET /job-matches/:id
func (h *ResultHandler) HandleGetJobMatch(c *fiber.Ctx) error {
	if h.matchRepo == nil {
		return unavailable(c, "job match storage is disabled")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job match ID format",
		})
	}

	result, err := h.matchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job match not found",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// HandleSearchCandidates handles GET /candidates/search?q=&limit=
func (h *ResultHandler) HandleSearchCandidates(c *fiber.Ctx) error {
	if h.index == nil {
		return unavailable(c, "candidate search is disabled")
	}

	results, err := h.index.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}

func unavailable(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": message,
	})
}
