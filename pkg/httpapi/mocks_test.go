package httpapi

import (
	"context"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// --- Mocks ---

type mockMemes struct {
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
	lastReq      domain.GenerationRequest
	calls        int
}

func (m *mockMemes) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.calls++
	m.lastReq = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	resp := &domain.ImageResponse{Data: []byte("png-bytes"), MimeType: "image/png"}
	return &domain.GenerationResult{ImageURL: resp.DataURI(), UsedFallback: true, MimeType: "image/png"}, nil
}

type staticTemplates []domain.TemplateConfig

func (s staticTemplates) All() []domain.TemplateConfig { return s }
