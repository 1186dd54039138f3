package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

type ResumeRepository interface {
	Save(result *models.ProcessingResult) error
	FindByID(id uuid.UUID) (*models.ProcessingResult, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Save upserts the record keyed by the processing result ID.
func (r *resumeRepository) Save(result *models.ProcessingResult) error {
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return fmt.Errorf("invalid result id %q: %w", result.ID, err)
	}

	record := models.ResumeRecord{
		ID:        id,
		FileName:  result.FileName,
		Status:    string(result.Status),
		Error:     result.Error,
		Data:      "null",
		UpdatedAt: time.Now(),
	}
	if result.Data != nil {
		data, err := json.Marshal(result.Data)
		if err != nil {
			return fmt.Errorf("failed to encode resume data: %w", err)
		}
		record.Data = string(data)
		record.Name = result.Data.Name
		record.Email = result.Data.Email
	}

	if err := r.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.ProcessingResult, error) {
	var record models.ResumeRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	result := &models.ProcessingResult{
		ID:       record.ID.String(),
		FileName: record.FileName,
		Status:   models.ProcessingStatus(record.Status),
		Error:    record.Error,
	}
	if record.Data != "" && record.Data != "null" {
		var data models.ParsedResumeData
		if err := json.Unmarshal([]byte(record.Data), &data); err != nil {
			return nil, fmt.Errorf("failed to decode resume data: %w", err)
		}
		result.Data = &data
	}

	return result, nil
}
