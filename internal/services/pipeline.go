package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

// ResumePipeline runs validate, extract and parse for uploaded files.
type ResumePipeline interface {
	ProcessFile(ctx context.Context, file models.UploadedFile) models.ProcessingResult
	ProcessFiles(ctx context.Context, files []models.UploadedFile) ([]models.ProcessingResult, error)
}

type resumePipeline struct {
	validator FileValidator
	storage   StorageService
	extractor TextExtractor
	parser    ResumeParser
}

func NewResumePipeline(
	validator FileValidator,
	storage StorageService,
	extractor TextExtractor,
	parser ResumeParser,
) ResumePipeline {
	return &resumePipeline{
		validator: validator,
		storage:   storage,
		extractor: extractor,
		parser:    parser,
	}
}

// ProcessFiles handles files one at a time. Failures stay inline in the results;
// the returned error is a ValidationError only when no file passed validation.
func (p *resumePipeline) ProcessFiles(ctx context.Context, files []models.UploadedFile) ([]models.ProcessingResult, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "files", Message: "no files uploaded"}
	}

	results := make([]models.ProcessingResult, 0, len(files))
	invalid := 0
	for _, file := range files {
		if !p.validator.Validate(file.Name, file.MimeType, file.Size).Valid {
			invalid++
		}
		results = append(results, p.ProcessFile(ctx, file))
	}

	if invalid == len(files) {
		return results, &ValidationError{Field: "files", Message: "none of the uploaded files are valid"}
	}
	return results, nil
}

// ProcessFile never returns an error; the outcome is carried by the result status.
func (p *resumePipeline) ProcessFile(ctx context.Context, file models.UploadedFile) models.ProcessingResult {
	result := models.ProcessingResult{
		ID:       uuid.NewString(),
		FileName: file.Name,
		Status:   models.StatusProcessing,
	}

	if v := p.validator.Validate(file.Name, file.MimeType, file.Size); !v.Valid {
		return failed(result, v.Reason)
	}

	extracted, err := p.extract(ctx, file)
	if err != nil {
		log.Printf("❌ Extraction failed for %s: %v", file.Name, err)
		return failed(result, err.Error())
	}

	data, err := p.parser.Parse(ctx, extracted.Text)
	if err != nil {
		log.Printf("❌ Parsing failed for %s: %v", file.Name, err)
		return failed(result, err.Error())
	}

	done := 100
	result.Status = models.StatusCompleted
	result.Data = data
	result.Progress = &done

	log.Printf("✅ Processed %s via %s", file.Name, extracted.Method)
	return result
}

// extract buffers the upload on disk and always removes it before returning.
func (p *resumePipeline) extract(ctx context.Context, file models.UploadedFile) (*ExtractionResult, error) {
	filePath, err := p.storage.SaveFile(file.Name, file.Data)
	if err != nil {
		return nil, &ExtractionError{FileName: file.Name, Message: "failed to buffer upload", Cause: err}
	}
	defer func() {
		if err := p.storage.DeleteFile(filePath); err != nil {
			log.Printf("⚠️ Failed to remove temporary file %s: %v", filePath, err)
		}
	}()

	return p.extractor.Extract(ctx, filePath, file.Name)
}

func failed(result models.ProcessingResult, reason string) models.ProcessingResult {
	if reason == "" {
		reason = fmt.Sprintf("processing of %s failed", result.FileName)
	}
	result.Status = models.StatusFailed
	result.Error = reason
	return result
}
