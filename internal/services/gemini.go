package services

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

// ModelClient is the external generative model as seen by the pipeline.
// Implementations make exactly one remote call per method invocation.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	ModelClient
	Embedder
}

// maxEmbedBytes keeps embedding input under the model's token limit.
const maxEmbedBytes = 40000

type GeminiOptions struct {
	APIKey      string
	Model       string
	EmbedModel  string
	Timeout     time.Duration
	Temperature float32
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	embedModel  string
	timeout     time.Duration
	temperature float32
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = "text-embedding-004"
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.2
	}

	return &geminiService{
		client:      client,
		modelName:   opts.Model,
		embedModel:  opts.EmbedModel,
		timeout:     opts.Timeout,
		temperature: opts.Temperature,
	}, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbedBytes)

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, &ExternalServiceError{Service: "gemini", Message: "failed to generate embedding", Cause: err}
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &ExternalServiceError{Service: "gemini", Message: "empty embedding result"}
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements ModelClient.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

// GenerateFromFile implements ModelClient. The SDK base64-encodes the inline bytes.
func (g *geminiService) GenerateFromFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	return g.generate(ctx, contents)
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", &ExternalServiceError{Service: "gemini", Message: "failed to generate content", Cause: err}
	}

	if resp == nil {
		return "", &ExternalServiceError{Service: "gemini", Message: "no response generated (nil response)"}
	}

	return resp.Text(), nil
}

func (g *geminiService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// truncateUTF8 cuts s to at most maxBytes without splitting a multi-byte rune.
func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
