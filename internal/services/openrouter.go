package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// openRouterService talks to an OpenAI-compatible chat completions API.
type openRouterService struct {
	client *resty.Client
	model  string
}

func NewOpenRouterService(opts OpenRouterOptions) (ModelClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is not set")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://openrouter.ai/api/v1"
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &openRouterService{client: client, model: opts.Model}, nil
}

// GenerateText implements ModelClient.
func (s *openRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, []map[string]any{
		{"role": "user", "content": prompt},
	})
}

// GenerateFromFile implements ModelClient. Images go as image_url parts, documents as file parts.
func (s *openRouterService) GenerateFromFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	var filePart map[string]any
	if strings.HasPrefix(mimeType, "image/") {
		filePart = map[string]any{
			"type":      "image_url",
			"image_url": map[string]string{"url": dataURL},
		}
	} else {
		filePart = map[string]any{
			"type": "file",
			"file": map[string]string{"filename": "document", "file_data": dataURL},
		}
	}

	return s.complete(ctx, []map[string]any{
		{
			"role": "user",
			"content": []map[string]any{
				{"type": "text", "text": prompt},
				filePart,
			},
		},
	})
}

func (s *openRouterService) complete(ctx context.Context, messages []map[string]any) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":    s.model,
			"messages": messages,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", &ExternalServiceError{Service: "openrouter", Message: "request failed", Cause: err}
	}

	if resp.IsError() {
		return "", &ExternalServiceError{
			Service: "openrouter",
			Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode(), gjson.GetBytes(resp.Body(), "error.message").String()),
		}
	}

	return gjson.GetBytes(resp.Body(), "choices.0.message.content").String(), nil
}
