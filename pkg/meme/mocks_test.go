package meme

import (
	"context"
	"errors"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// --- Mocks ---

type mockRemote struct {
	generateFunc func(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error)
	calls        int
	lastReq      domain.ImageGenerationRequest
}

func (m *mockRemote) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &domain.ImageResponse{Data: []byte("remote-jpeg"), MimeType: "image/jpeg"}, nil
}

func (m *mockRemote) Provider() string { return "mock" }

type mockRenderer struct {
	data       []byte
	err        error
	calls      int
	lastID     string
	lastTexts  []string
	ctxErrSeen error
}

func (m *mockRenderer) Render(ctx context.Context, templateID string, texts []string) ([]byte, error) {
	m.calls++
	m.lastID, m.lastTexts = templateID, texts
	m.ctxErrSeen = ctx.Err()
	if m.err != nil {
		return nil, m.err
	}
	if m.data == nil {
		return []byte("local-png"), nil
	}
	return m.data, nil
}

var errBoom = errors.New("boom")
