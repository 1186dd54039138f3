package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type UploadHandler struct {
	pipeline   services.ResumePipeline
	resumeRepo repositories.ResumeRepository
	index      services.CandidateIndex
}

// NewUploadHandler wires the upload endpoint. resumeRepo and index may be nil.
func NewUploadHandler(
	pipeline services.ResumePipeline,
	resumeRepo repositories.ResumeRepository,
	index services.CandidateIndex,
) *UploadHandler {
	return &UploadHandler{
		pipeline:   pipeline,
		resumeRepo: resumeRepo,
		index:      index,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Attach one or more resumes as 'files'.",
		})
	}

	files := make([]models.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s", fh.Filename),
			})
		}
		files = append(files, file)
	}

	results, err := h.pipeline.ProcessFiles(c.UserContext(), files)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   verr.Message,
				"results": results,
			})
		}
		return respondError(c, err)
	}

	completed := 0
	for i := range results {
		if !results[i].IsCompleted() {
			continue
		}
		completed++
		h.store(c, &results[i])
	}

	return c.JSON(models.UploadResponse{
		Success: true,
		Results: results,
		Message: fmt.Sprintf("Processed %d of %d files successfully", completed, len(results)),
	})
}

// store persists and indexes a completed result. Failures are logged, never returned.
func (h *UploadHandler) store(c *fiber.Ctx, result *models.ProcessingResult) {
	if h.resumeRepo != nil {
		if err := h.resumeRepo.Save(result); err != nil {
			log.Printf("⚠️ Failed to persist resume %s: %v", result.ID, err)
		}
	}
	if h.index != nil {
		if err := h.index.IndexCandidate(c.UserContext(), *result); err != nil {
			log.Printf("⚠️ Failed to index candidate %s: %v", result.ID, err)
		}
	}
}

func readUpload(fh *multipart.FileHeader) (models.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return models.UploadedFile{
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
