package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"google.golang.org/genai"
)

const (
	// DefaultImagenModel は ImagenGenerator の既定モデルです。
	DefaultImagenModel = "imagen-4.0-generate-001"

	imagenOutputMIMEType = "image/png"
)

// ImagenGenerator は genai の GenerateImages を使うテキストからの画像生成器です。
type ImagenGenerator struct {
	models ImagesModel
	model  string
	// Gemini API バックエンドは seed と negativePrompt を受け付けない
	extendedParams bool
}

// ImagenOption は ImagenGenerator の任意設定です。
type ImagenOption func(*ImagenGenerator)

// WithExtendedParams は seed と negativePrompt を送信します。Vertex AI バックエンド向けです。
func WithExtendedParams() ImagenOption {
	return func(g *ImagenGenerator) { g.extendedParams = true }
}

// NewImagenGenerator は ImagenGenerator を初期化します。model が空なら DefaultImagenModel を使います。
func NewImagenGenerator(models ImagesModel, model string, opts ...ImagenOption) (*ImagenGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ImagesModel) is required")
	}
	if model == "" {
		model = DefaultImagenModel
	}
	g := &ImagenGenerator{models: models, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Provider はログやエラーに使う生成器名を返します。
func (g *ImagenGenerator) Provider() string { return "imagen" }

// GenerateImage は1枚の画像を生成します。
func (g *ImagenGenerator) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	if req.Prompt == "" {
		return nil, errors.New("prompt is required")
	}
	aspect, err := aspectRatioFor(req)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspect,
		OutputMIMEType: imagenOutputMIMEType,
	}
	var usedSeed int64
	if g.extendedParams {
		cfg.NegativePrompt = req.NegativePrompt
		cfg.Seed = seedToPtrInt32(req.Seed)
		usedSeed = dereferenceSeed(req.Seed)
	} else if req.Seed != nil || req.NegativePrompt != "" {
		slog.DebugContext(ctx, "seed と negativePrompt はこのバックエンドでは送信しません", "model", g.model)
	}

	resp, err := g.models.GenerateImages(ctx, g.model, req.Prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("Imagen画像生成エラー: %w", err)
	}
	return parseImagesResponse(resp, usedSeed)
}

func parseImagesResponse(resp *genai.GenerateImagesResponse, seed int64) (*domain.ImageResponse, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return nil, errors.New("no images in response")
	}
	gen := resp.GeneratedImages[0]
	if gen.Image == nil || len(gen.Image.ImageBytes) == 0 {
		if gen.RAIFilteredReason != "" {
			return nil, fmt.Errorf("image filtered: %s", gen.RAIFilteredReason)
		}
		return nil, errors.New("no image data")
	}

	mimeType := gen.Image.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(gen.Image.ImageBytes)
	}
	return &domain.ImageResponse{Data: gen.Image.ImageBytes, MimeType: mimeType, UsedSeed: seed}, nil
}
