package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type fakeMatcher struct {
	calls  int
	input  services.MatchInput
	result *models.JobMatchResult
	err    error
}

func (f *fakeMatcher) Match(ctx context.Context, input services.MatchInput) (*models.JobMatchResult, error) {
	f.calls++
	f.input = input
	return f.result, f.err
}

type fakeAggregator struct {
	calls   int
	resumes []models.ParsedResumeData
	result  *models.BatchAnalysisResult
	err     error
}

func (f *fakeAggregator) Analyze(ctx context.Context, resumes []models.ParsedResumeData) (*models.BatchAnalysisResult, error) {
	f.calls++
	f.resumes = resumes
	return f.result, f.err
}

type fakePipeline struct {
	files   []models.UploadedFile
	results []models.ProcessingResult
	err     error
}

func (f *fakePipeline) ProcessFile(ctx context.Context, file models.UploadedFile) models.ProcessingResult {
	return models.ProcessingResult{}
}

func (f *fakePipeline) ProcessFiles(ctx context.Context, files []models.UploadedFile) ([]models.ProcessingResult, error) {
	f.files = files
	return f.results, f.err
}

type fakeResumeRepo struct {
	saved  []string
	stored map[uuid.UUID]*models.ProcessingResult
	err    error
}

func (f *fakeResumeRepo) Save(result *models.ProcessingResult) error {
	f.saved = append(f.saved, result.ID)
	return f.err
}

func (f *fakeResumeRepo) FindByID(id uuid.UUID) (*models.ProcessingResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.stored[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeMatchRepo struct {
	created []string
	stored  map[uuid.UUID]*models.JobMatchResult
	err     error
}

func (f *fakeMatchRepo) Create(result *models.JobMatchResult) error {
	f.created = append(f.created, result.ID)
	return f.err
}

func (f *fakeMatchRepo) FindByID(id uuid.UUID) (*models.JobMatchResult, error) {
	if r, ok := f.stored[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeIndex struct {
	indexed []string
	query   string
	limit   int
	results []models.CandidateSearchResult
	err     error
}

func (f *fakeIndex) IndexCandidate(ctx context.Context, result models.ProcessingResult) error {
	f.indexed = append(f.indexed, result.ID)
	return f.err
}

func (f *fakeIndex) Search(ctx context.Context, query string, limit int) ([]models.CandidateSearchResult, error) {
	f.query, f.limit = query, limit
	return f.results, f.err
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}
