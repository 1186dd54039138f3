package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

func newAnalysisApp(aggregator *fakeAggregator) *fiber.App {
	app := fiber.New()
	app.Post("/batch-analysis", NewAnalysisHandler(aggregator).HandleBatchAnalysis)
	return app
}

func TestAnalysisHandler_Success(t *testing.T) {
	aggregator := &fakeAggregator{result: &models.BatchAnalysisResult{
		TotalCandidates:           2,
		AverageSkillsPerCandidate: 2,
		TopSkills:                 []models.SkillStat{{Skill: "Go", Count: 2, Percentage: 100}},
	}}
	app := newAnalysisApp(aggregator)

	status, body := postJSON(t, app, "/batch-analysis",
		`{"resumesData": [{"name": "Ann", "skills": ["Go"]}, {"name": "Bob", "skills": ["Go", "SQL"]}]}`)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, float64(2), analysis["totalCandidates"])

	require.Len(t, aggregator.resumes, 2)
	assert.Equal(t, []string{"Go", "SQL"}, aggregator.resumes[1].Skills)
}

func TestAnalysisHandler_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "empty list", body: `{"resumesData": []}`, wantError: "resumesData must contain at least 1 item(s)"},
		{name: "missing list", body: `{}`, wantError: "Invalid request payload"},
		{name: "wrong item type", body: `{"resumesData": ["Ann"]}`, wantError: "Invalid request payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregator := &fakeAggregator{}

			status, body := postJSON(t, newAnalysisApp(aggregator), "/batch-analysis", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, 0, aggregator.calls)
		})
	}
}

func TestAnalysisHandler_ServiceValidationError(t *testing.T) {
	aggregator := &fakeAggregator{err: &services.ValidationError{Field: "resumesData", Message: "no resumes to analyze"}}

	status, body := postJSON(t, newAnalysisApp(aggregator), "/batch-analysis", `{"resumesData": [{"name": "Ann"}]}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "no resumes to analyze", body["error"])
}
