package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockPartsModel struct {
	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	calls                 int
}

func (m *mockPartsModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return imageResponse("image/png", []byte("fake"), genai.FinishReasonStop), nil
}

type mockImagesModel struct {
	generateImagesFunc func(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	lastModel          string
	lastPrompt         string
	lastConfig         *genai.GenerateImagesConfig
}

func (m *mockImagesModel) GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.lastModel, m.lastPrompt, m.lastConfig = model, prompt, cfg
	if m.generateImagesFunc != nil {
		return m.generateImagesFunc(ctx, model, prompt, cfg)
	}
	return &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: []byte("imagen-png"), MIMEType: "image/png"}}},
	}, nil
}

type mockContentModel struct {
	resp       *genai.GenerateContentResponse
	err        error
	lastModel  string
	lastInput  []*genai.Content
	lastConfig *genai.GenerateContentConfig
}

func (m *mockContentModel) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.lastModel, m.lastInput, m.lastConfig = model, contents, cfg
	return m.resp, m.err
}

func imageResponse(mimeType string, data []byte, reason genai.FinishReason) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				FinishReason: reason,
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
				},
			}},
		},
	}
}
