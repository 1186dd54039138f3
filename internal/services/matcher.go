package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	defaultSubScore    = 50
	unableToAnalyze    = "Unable to analyze"
	analysisFailed     = "Analysis failed"
	manualReviewNotice = "Manual review recommended due to analysis error"
	manualReviewAction = "Manual review recommended"
)

type MatchInput struct {
	JobDescription string
	JobTitle       string
	Candidates     []models.ProcessingResult
}

type JobMatcher interface {
	Match(ctx context.Context, input MatchInput) (*models.JobMatchResult, error)
}

type jobMatcher struct {
	model       ModelClient
	prompts     *PromptBuilder
	concurrency int
}

// NewJobMatcher returns a matcher that scores candidates in parallel.
// A concurrency of zero or less leaves the fan-out unbounded.
func NewJobMatcher(model ModelClient, concurrency int) JobMatcher {
	return &jobMatcher{
		model:       model,
		prompts:     NewPromptBuilder(),
		concurrency: concurrency,
	}
}

// Match implements JobMatcher.
func (m *jobMatcher) Match(ctx context.Context, input MatchInput) (*models.JobMatchResult, error) {
	description := strings.TrimSpace(input.JobDescription)
	if description == "" {
		return nil, &ValidationError{Field: "jobDescription", Message: "job description is required"}
	}

	candidates := make([]models.ProcessingResult, 0, len(input.Candidates))
	for _, c := range input.Candidates {
		if c.IsCompleted() {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, &ValidationError{Field: "candidates", Message: "at least one completed candidate is required"}
	}

	jobTitle := strings.TrimSpace(input.JobTitle)

	// Each goroutine owns exactly one slot of scores.
	scores := make([]models.CandidateScore, len(candidates))
	var g errgroup.Group
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}
	for i, candidate := range candidates {
		g.Go(func() error {
			scores[i] = m.scoreCandidate(ctx, jobTitle, description, candidate)
			return nil
		})
	}
	_ = g.Wait()

	RankCandidates(scores)

	result := &models.JobMatchResult{
		ID:              uuid.NewString(),
		JobTitle:        jobTitle,
		JobDescription:  description,
		Candidates:      scores,
		TotalCandidates: len(scores),
		AverageScore:    averageScore(scores),
		AnalyzedAt:      time.Now().UTC(),
	}

	insights, err := m.poolInsights(ctx, jobTitle, description, scores)
	if err != nil {
		log.Printf("⚠️ Match insights unavailable: %v", err)
		insights = defaultMatchInsights()
	}
	result.MatchInsights = insights

	return result, nil
}

func (m *jobMatcher) scoreCandidate(ctx context.Context, jobTitle, description string, candidate models.ProcessingResult) models.CandidateScore {
	response, err := m.model.GenerateText(ctx, m.prompts.BuildCandidateScorePrompt(jobTitle, description, candidate.Data))
	if err != nil {
		log.Printf("⚠️ Scoring failed for candidate %s: %v", candidate.ID, err)
		return defaultCandidateScore(candidate)
	}

	doc, err := DecodeJSON(response)
	if err != nil {
		log.Printf("⚠️ Unparseable score for candidate %s: %v", candidate.ID, err)
		return defaultCandidateScore(candidate)
	}

	return models.CandidateScore{
		CandidateID: candidate.ID,
		Name:        candidate.Data.Name,
		Email:       candidate.Data.Email,
		Score:       clampScore(doc.Get("score")),
		Breakdown: models.ScoreBreakdown{
			SkillsMatch:     clampScore(doc.Get("breakdown.skillsMatch")),
			ExperienceMatch: clampScore(doc.Get("breakdown.experienceMatch")),
			EducationMatch:  clampScore(doc.Get("breakdown.educationMatch")),
			OverallFit:      clampScore(doc.Get("breakdown.overallFit")),
		},
		Strengths:      jsonStrings(doc.Get("strengths")),
		Weaknesses:     jsonStrings(doc.Get("weaknesses")),
		Recommendation: jsonString(doc.Get("recommendation")),
	}
}

func (m *jobMatcher) poolInsights(ctx context.Context, jobTitle, description string, scores []models.CandidateScore) (models.MatchInsights, error) {
	response, err := m.model.GenerateText(ctx, m.prompts.BuildMatchInsightsPrompt(jobTitle, description, scores))
	if err != nil {
		return models.MatchInsights{}, err
	}

	doc, err := DecodeJSON(response)
	if err != nil {
		return models.MatchInsights{}, err
	}

	return models.MatchInsights{
		BestSkillMatches:   jsonStrings(doc.Get("bestSkillMatches")),
		CommonGaps:         jsonStrings(doc.Get("commonGaps")),
		RecommendedActions: jsonStrings(doc.Get("recommendedActions")),
	}, nil
}

// RankCandidates sorts by descending score and assigns 1-based ranks.
// Equal scores keep their original relative order.
func RankCandidates(scores []models.CandidateScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
}

func defaultCandidateScore(candidate models.ProcessingResult) models.CandidateScore {
	score := models.CandidateScore{
		CandidateID: candidate.ID,
		Score:       defaultSubScore,
		Breakdown: models.ScoreBreakdown{
			SkillsMatch:     defaultSubScore,
			ExperienceMatch: defaultSubScore,
			EducationMatch:  defaultSubScore,
			OverallFit:      defaultSubScore,
		},
		Strengths:      []string{unableToAnalyze},
		Weaknesses:     []string{analysisFailed},
		Recommendation: manualReviewNotice,
	}
	if candidate.Data != nil {
		score.Name = candidate.Data.Name
		score.Email = candidate.Data.Email
	}
	return score
}

func defaultMatchInsights() models.MatchInsights {
	return models.MatchInsights{
		BestSkillMatches:   []string{},
		CommonGaps:         []string{},
		RecommendedActions: []string{manualReviewAction},
	}
}

// clampScore rounds a model-supplied number and clamps it into [0,100].
func clampScore(r gjson.Result) int {
	v := math.Round(r.Float())
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

func averageScore(scores []models.CandidateScore) int {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range scores {
		total += s.Score
	}
	return roundInt(float64(total) / float64(len(scores)))
}
