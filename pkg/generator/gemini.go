package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// DefaultGeminiImageModel は GeminiGenerator の既定モデルです。
const DefaultGeminiImageModel = "gemini-2.5-flash-image"

// GeminiGenerator は Gemini の画像出力モデルを使う生成器です。
type GeminiGenerator struct {
	aiClient     PartsModel
	model        string
	systemPrompt string
}

// GeminiOption は GeminiGenerator の任意設定です。
type GeminiOption func(*GeminiGenerator)

// WithSystemPrompt はすべてのリクエストに付けるシステムプロンプトを設定するのだ。
func WithSystemPrompt(p string) GeminiOption {
	return func(g *GeminiGenerator) { g.systemPrompt = p }
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
func NewGeminiGenerator(aiClient PartsModel, model string, opts ...GeminiOption) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (PartsModel) is required")
	}
	if model == "" {
		model = DefaultGeminiImageModel
	}

	g := &GeminiGenerator{aiClient: aiClient, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Provider はログやエラーに使う生成器名を返すのだ。
func (g *GeminiGenerator) Provider() string { return "gemini" }

// GenerateImage はプロンプトから1枚の画像を生成するのだ。
func (g *GeminiGenerator) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	if req.Prompt == "" {
		return nil, errors.New("prompt is required")
	}
	aspect, err := aspectRatioFor(req)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	if req.NegativePrompt != "" {
		parts = append(parts, &genai.Part{Text: "Avoid: " + req.NegativePrompt})
	}

	opts := gemini.GenerateOptions{
		AspectRatio:  aspect,
		SystemPrompt: g.systemPrompt,
		Seed:         req.Seed,
	}

	slog.DebugContext(ctx, "Gemini画像生成リクエスト", "model", g.model, "aspect_ratio", aspect)
	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}

	out, err := parseToResponse(resp, dereferenceSeed(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("Gemini応答の解析エラー: %w", err)
	}
	return out, nil
}

// parseToResponse は最初の候補から画像データを取り出すのだ。
// STOP 以外の終了理由はブロックや打ち切りとみなして失敗にするのだ。
func parseToResponse(resp *gemini.Response, seed int64) (*domain.ImageResponse, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, errors.New("invalid response")
	}
	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil {
		return nil, errors.New("invalid response")
	}
	if fr := candidate.FinishReason; fr != "" && fr != genai.FinishReasonUnspecified && fr != genai.FinishReasonStop {
		return nil, fmt.Errorf("generation stopped: %s", fr)
	}
	if candidate.Content == nil {
		return nil, errors.New("no image data")
	}
	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &domain.ImageResponse{Data: part.InlineData.Data, MimeType: part.InlineData.MIMEType, UsedSeed: seed}, nil
		}
	}
	return nil, errors.New("no image data")
}
