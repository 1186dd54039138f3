package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	profileChunkSize    = 800
	profileChunkOverlap = 100

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// CandidateIndex keeps completed candidates searchable by meaning.
type CandidateIndex interface {
	IndexCandidate(ctx context.Context, result models.ProcessingResult) error
	Search(ctx context.Context, query string, limit int) ([]models.CandidateSearchResult, error)
}

type candidateIndex struct {
	store    QdrantService
	embedder Embedder
	chunker  TextChunker
}

func NewCandidateIndex(store QdrantService, embedder Embedder, chunker TextChunker) CandidateIndex {
	return &candidateIndex{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
	}
}

// IndexCandidate replaces any earlier chunks for the same candidate.
func (ci *candidateIndex) IndexCandidate(ctx context.Context, result models.ProcessingResult) error {
	if !result.IsCompleted() {
		return fmt.Errorf("candidate %s is not completed", result.ID)
	}

	chunks := ci.chunker.ChunkText(FormatCandidateProfile(result.Data), profileChunkSize, profileChunkOverlap)
	points := make([]CandidateChunk, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := ci.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of %s: %w", i, result.ID, err)
		}
		points = append(points, CandidateChunk{
			PointID:     uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s#%d", result.ID, i))).String(),
			CandidateID: result.ID,
			Name:        result.Data.Name,
			Email:       result.Data.Email,
			Text:        chunk,
			Embedding:   embedding,
		})
	}

	if err := ci.store.DeleteCandidate(ctx, result.ID); err != nil {
		return err
	}
	return ci.store.UpsertChunks(ctx, points)
}

// Search returns at most limit candidates, each scored by its best matching chunk.
// limit is capped at maxSearchLimit.
func (ci *candidateIndex) Search(ctx context.Context, query string, limit int) ([]models.CandidateSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "search query is required"}
	}
	switch {
	case limit <= 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}

	embedding, err := ci.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	// Several chunks can belong to one candidate, so over-fetch before grouping.
	hits, err := ci.store.SearchSimilar(ctx, embedding, limit*3)
	if err != nil {
		return nil, err
	}

	results := []models.CandidateSearchResult{}
	seen := make(map[string]bool)
	for _, hit := range hits {
		if hit.CandidateID == "" || seen[hit.CandidateID] {
			continue
		}
		seen[hit.CandidateID] = true
		results = append(results, models.CandidateSearchResult{
			CandidateID: hit.CandidateID,
			Name:        hit.Name,
			Email:       hit.Email,
			Score:       hit.Score,
			Snippet:     hit.Text,
		})
		if len(results) == limit {
			break
		}
	}

	return results, nil
}
