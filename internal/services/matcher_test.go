package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

func completedCandidate(id, name string) models.ProcessingResult {
	return models.ProcessingResult{
		ID:       id,
		FileName: name + ".pdf",
		Status:   models.StatusCompleted,
		Data: &models.ParsedResumeData{
			Name:   name,
			Email:  strings.ToLower(name) + "@example.com",
			Skills: []string{"Go"},
			Experience: []models.Experience{
				{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "2024", Description: "APIs"},
			},
		},
	}
}

func isInsightsPrompt(prompt string) bool {
	return strings.Contains(prompt, "CANDIDATE RESULTS")
}

// scoreResponder answers scoring prompts from a per-candidate table.
func scoreResponder(scores map[string]string, insights string, insightsErr error) func(context.Context, string) (string, error) {
	return func(ctx context.Context, prompt string) (string, error) {
		if isInsightsPrompt(prompt) {
			return insights, insightsErr
		}
		for name, response := range scores {
			if strings.Contains(prompt, "Name: "+name+"\n") {
				return response, nil
			}
		}
		return "", fmt.Errorf("unexpected prompt")
	}
}

func scoreJSON(score int) string {
	return fmt.Sprintf(`{"score": %d, "breakdown": {"skillsMatch": %d, "experienceMatch": 60, "educationMatch": 70, "overallFit": 80},
		"strengths": ["Go"], "weaknesses": ["Kubernetes"], "recommendation": "Interview"}`, score, score)
}

func TestJobMatcher_FailsFastWithoutExternalCalls(t *testing.T) {
	tests := []struct {
		name  string
		input MatchInput
		field string
	}{
		{name: "empty description", input: MatchInput{JobDescription: "", Candidates: []models.ProcessingResult{completedCandidate("1", "Ann")}}, field: "jobDescription"},
		{name: "whitespace description", input: MatchInput{JobDescription: " \n\t", Candidates: []models.ProcessingResult{completedCandidate("1", "Ann")}}, field: "jobDescription"},
		{name: "no candidates", input: MatchInput{JobDescription: "Go developer"}, field: "candidates"},
		{name: "only failed candidates", input: MatchInput{JobDescription: "Go developer", Candidates: []models.ProcessingResult{{ID: "2", Status: models.StatusFailed, Error: "boom"}}}, field: "candidates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &MockModelClient{}

			_, err := NewJobMatcher(model, 0).Match(context.Background(), tt.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, model.Calls())
		})
	}
}

func TestJobMatcher_RanksStablyAndAverages(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: scoreResponder(map[string]string{
			"Ann":  scoreJSON(90),
			"Bob":  scoreJSON(70),
			"Cara": scoreJSON(90),
			"Dan":  scoreJSON(50),
		}, `{"bestSkillMatches": ["Go"], "commonGaps": ["Kubernetes"], "recommendedActions": ["Interview Ann"]}`, nil),
	}

	result, err := NewJobMatcher(model, 0).Match(context.Background(), MatchInput{
		JobDescription: "Senior Go developer",
		JobTitle:       "Backend Engineer",
		Candidates: []models.ProcessingResult{
			completedCandidate("a", "Ann"),
			completedCandidate("b", "Bob"),
			completedCandidate("c", "Cara"),
			completedCandidate("d", "Dan"),
		},
	})
	require.NoError(t, err)

	var order []string
	var ranks []int
	for _, c := range result.Candidates {
		order = append(order, c.CandidateID)
		ranks = append(ranks, c.Rank)
	}
	assert.Equal(t, []string{"a", "c", "b", "d"}, order)
	assert.Equal(t, []int{1, 2, 3, 4}, ranks)

	assert.Equal(t, 4, result.TotalCandidates)
	assert.Equal(t, 75, result.AverageScore)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, "ann@example.com", result.Candidates[0].Email)
	assert.Equal(t, []string{"Interview Ann"}, result.MatchInsights.RecommendedActions)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 5, model.Calls())
}

func TestJobMatcher_ClampsScores(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: scoreResponder(map[string]string{
			"Ann": `{"score": 150, "breakdown": {"skillsMatch": -20, "experienceMatch": 100.4, "educationMatch": "85", "overallFit": 1e9}}`,
			"Bob": `{"score": -5.5, "breakdown": {"skillsMatch": 99.6}}`,
		}, `{}`, nil),
	}

	result, err := NewJobMatcher(model, 2).Match(context.Background(), MatchInput{
		JobDescription: "Go developer",
		Candidates:     []models.ProcessingResult{completedCandidate("a", "Ann"), completedCandidate("b", "Bob")},
	})
	require.NoError(t, err)

	ann, bob := result.Candidates[0], result.Candidates[1]
	assert.Equal(t, 100, ann.Score)
	assert.Equal(t, models.ScoreBreakdown{SkillsMatch: 0, ExperienceMatch: 100, EducationMatch: 85, OverallFit: 100}, ann.Breakdown)
	assert.Equal(t, 0, bob.Score)
	assert.Equal(t, 100, bob.Breakdown.SkillsMatch)
	assert.Equal(t, []string{}, bob.Strengths)

	for _, c := range result.Candidates {
		for _, v := range []int{c.Score, c.Breakdown.SkillsMatch, c.Breakdown.ExperienceMatch, c.Breakdown.EducationMatch, c.Breakdown.OverallFit} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestJobMatcher_IsolatesCandidateFailures(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			switch {
			case isInsightsPrompt(prompt):
				return `{"recommendedActions": ["Proceed"]}`, nil
			case strings.Contains(prompt, "Name: Bob\n"):
				return "", errors.New("rate limited")
			case strings.Contains(prompt, "Name: Cara\n"):
				return "not json at all", nil
			default:
				return scoreJSON(80), nil
			}
		},
	}

	result, err := NewJobMatcher(model, 0).Match(context.Background(), MatchInput{
		JobDescription: "Go developer",
		Candidates: []models.ProcessingResult{
			completedCandidate("a", "Ann"),
			completedCandidate("b", "Bob"),
			completedCandidate("c", "Cara"),
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 3)

	assert.Equal(t, "a", result.Candidates[0].CandidateID)
	for _, fallback := range result.Candidates[1:] {
		assert.Equal(t, 50, fallback.Score)
		assert.Equal(t, models.ScoreBreakdown{SkillsMatch: 50, ExperienceMatch: 50, EducationMatch: 50, OverallFit: 50}, fallback.Breakdown)
		assert.Equal(t, []string{"Unable to analyze"}, fallback.Strengths)
		assert.Equal(t, []string{"Analysis failed"}, fallback.Weaknesses)
		assert.Contains(t, fallback.Recommendation, "Manual review")
		assert.NotEmpty(t, fallback.Name)
	}
	assert.Equal(t, []string{"b", "c"}, []string{result.Candidates[1].CandidateID, result.Candidates[2].CandidateID})
	assert.Equal(t, 60, result.AverageScore)
}

func TestJobMatcher_NonObjectScoreReplyUsesDefault(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: scoreResponder(map[string]string{
			"Ann": "null",
			"Bob": "87",
		}, `{}`, nil),
	}

	result, err := NewJobMatcher(model, 0).Match(context.Background(), MatchInput{
		JobDescription: "Go developer",
		Candidates:     []models.ProcessingResult{completedCandidate("a", "Ann"), completedCandidate("b", "Bob")},
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)

	for _, c := range result.Candidates {
		assert.Equal(t, 50, c.Score)
		assert.Equal(t, models.ScoreBreakdown{SkillsMatch: 50, ExperienceMatch: 50, EducationMatch: 50, OverallFit: 50}, c.Breakdown)
		assert.Equal(t, []string{"Unable to analyze"}, c.Strengths)
		assert.Equal(t, []string{"Analysis failed"}, c.Weaknesses)
	}
}

func TestJobMatcher_InsightsFailureKeepsLeaderboard(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: scoreResponder(map[string]string{
			"Ann":  scoreJSON(40),
			"Bob":  scoreJSON(95),
			"Cara": scoreJSON(70),
			"Dan":  scoreJSON(85),
		}, "", errors.New("upstream timeout")),
	}

	result, err := NewJobMatcher(model, 0).Match(context.Background(), MatchInput{
		JobDescription: "Go developer",
		Candidates: []models.ProcessingResult{
			completedCandidate("a", "Ann"),
			completedCandidate("b", "Bob"),
			completedCandidate("c", "Cara"),
			completedCandidate("d", "Dan"),
		},
	})
	require.NoError(t, err)

	var scores []int
	for _, c := range result.Candidates {
		scores = append(scores, c.Score)
	}
	assert.Equal(t, []int{95, 85, 70, 40}, scores)
	assert.Equal(t, 73, result.AverageScore)

	assert.Empty(t, result.MatchInsights.BestSkillMatches)
	assert.Empty(t, result.MatchInsights.CommonGaps)
	assert.Equal(t, []string{"Manual review recommended"}, result.MatchInsights.RecommendedActions)
}

func TestJobMatcher_ScoresCandidatesConcurrently(t *testing.T) {
	const n = 4
	var arrived atomic.Int32
	allArrived := make(chan struct{})

	model := &MockModelClient{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			if isInsightsPrompt(prompt) {
				return `{}`, nil
			}
			if arrived.Add(1) == n {
				close(allArrived)
			}
			select {
			case <-allArrived:
				return scoreJSON(88), nil
			case <-time.After(5 * time.Second):
				return "", errors.New("calls were not issued concurrently")
			}
		},
	}

	candidates := make([]models.ProcessingResult, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, completedCandidate(fmt.Sprint(i), fmt.Sprintf("C%d", i)))
	}

	result, err := NewJobMatcher(model, 0).Match(context.Background(), MatchInput{JobDescription: "Go", Candidates: candidates})
	require.NoError(t, err)

	for _, c := range result.Candidates {
		assert.Equal(t, 88, c.Score)
	}
}

func TestRankCandidates(t *testing.T) {
	scores := []models.CandidateScore{
		{CandidateID: "first90", Score: 90},
		{CandidateID: "70", Score: 70},
		{CandidateID: "second90", Score: 90},
		{CandidateID: "50", Score: 50},
	}

	RankCandidates(scores)

	assert.Equal(t, "first90", scores[0].CandidateID)
	assert.Equal(t, "second90", scores[1].CandidateID)
	assert.Equal(t, "70", scores[2].CandidateID)
	assert.Equal(t, "50", scores[3].CandidateID)
	for i, s := range scores {
		assert.Equal(t, i+1, s.Rank)
	}
}
