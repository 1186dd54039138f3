package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

type JobMatchRepository interface {
	Create(result *models.JobMatchResult) error
	FindByID(id uuid.UUID) (*models.JobMatchResult, error)
}

type jobMatchRepository struct {
	db *gorm.DB
}

func NewJobMatchRepository(db *gorm.DB) JobMatchRepository {
	return &jobMatchRepository{db: db}
}

func (r *jobMatchRepository) Create(result *models.JobMatchResult) error {
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return fmt.Errorf("invalid job match id %q: %w", result.ID, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode job match: %w", err)
	}

	record := models.JobMatchRecord{
		ID:              id,
		JobTitle:        result.JobTitle,
		JobDescription:  result.JobDescription,
		TotalCandidates: result.TotalCandidates,
		AverageScore:    result.AverageScore,
		Result:          string(payload),
		CreatedAt:       result.AnalyzedAt,
	}

	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create job match: %w", err)
	}
	return nil
}

func (r *jobMatchRepository) FindByID(id uuid.UUID) (*models.JobMatchResult, error) {
	var record models.JobMatchRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job match %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job match: %w", err)
	}

	var result models.JobMatchResult
	if err := json.Unmarshal([]byte(record.Result), &result); err != nil {
		return nil, fmt.Errorf("failed to decode job match: %w", err)
	}
	return &result, nil
}
