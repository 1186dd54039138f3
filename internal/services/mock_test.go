package services

import (
	"context"
	"sync/atomic"
)

// MockModelClient implements ModelClient for testing
type MockModelClient struct {
	GenerateTextFunc     func(ctx context.Context, prompt string) (string, error)
	GenerateFromFileFunc func(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)

	calls atomic.Int32
}

func (m *MockModelClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "{}", nil
}

func (m *MockModelClient) GenerateFromFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	m.calls.Add(1)
	if m.GenerateFromFileFunc != nil {
		return m.GenerateFromFileFunc(ctx, prompt, data, mimeType)
	}
	return "", nil
}

func (m *MockModelClient) Calls() int {
	return int(m.calls.Load())
}
