package models

import (
	"time"

	"github.com/google/uuid"
)

type ScoreBreakdown struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	EducationMatch  int `json:"educationMatch"`
	OverallFit      int `json:"overallFit"`
}

type CandidateScore struct {
	CandidateID    string         `json:"candidateId"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Score          int            `json:"score"`
	Rank           int            `json:"rank"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	Recommendation string         `json:"recommendation"`
}

type MatchInsights struct {
	BestSkillMatches   []string `json:"bestSkillMatches"`
	CommonGaps         []string `json:"commonGaps"`
	RecommendedActions []string `json:"recommendedActions"`
}

// JobMatchResult is the ranked leaderboard for one job description.
type JobMatchResult struct {
	ID              string           `json:"id"`
	JobTitle        string           `json:"jobTitle,omitempty"`
	JobDescription  string           `json:"jobDescription"`
	Candidates      []CandidateScore `json:"candidates"`
	TotalCandidates int              `json:"totalCandidates"`
	AverageScore    int              `json:"averageScore"`
	MatchInsights   MatchInsights    `json:"matchInsights"`
	AnalyzedAt      time.Time        `json:"analyzedAt"`
}

type JobMatchRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JobTitle        string    `gorm:"type:text" json:"job_title"`
	JobDescription  string    `gorm:"type:text" json:"job_description"`
	TotalCandidates int       `gorm:"type:int" json:"total_candidates"`
	AverageScore    int       `gorm:"type:int" json:"average_score"`
	Result          string    `gorm:"type:jsonb" json:"result"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (j *JobMatchRecord) TableName() string {
	return "job_matches"
}
