package models

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingStatus string

const (
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// UploadedFile lives only for the duration of one processing request.
type UploadedFile struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

type ProcessingResult struct {
	ID       string            `json:"id"`
	FileName string            `json:"fileName"`
	Status   ProcessingStatus  `json:"status"`
	Data     *ParsedResumeData `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Progress *int              `json:"progress,omitempty"`
}

func (r ProcessingResult) IsCompleted() bool {
	return r.Status == StatusCompleted && r.Data != nil
}

type ParsedResumeData struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	LinkedIn   string       `json:"linkedin,omitempty"`
	GitHub     string       `json:"github,omitempty"`
	Portfolio  string       `json:"portfolio,omitempty"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

// ResumeRecord is the persisted form of a completed ProcessingResult.
type ResumeRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FileName  string    `gorm:"type:text" json:"file_name"`
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	Name      string    `gorm:"type:text;index" json:"name"`
	Email     string    `gorm:"type:text;index" json:"email"`
	Data      string    `gorm:"type:jsonb" json:"data"`
	Error     string    `gorm:"type:text" json:"error"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (r *ResumeRecord) TableName() string {
	return "resumes"
}
