package generator

import (
	"context"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageGenerator はプロンプトから画像を1枚生成するリモート生成器です。
// 失敗時は error を返し、部分的な結果は返しません。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error)
}

// PartsModel はマルチパートのプロンプトを Gemini に送るクライアントです。
// go-gemini-client の gemini.GenerativeModel と GenaiPartsModel が満たします。
type PartsModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImagesModel は Imagen の画像生成 API です。*genai.Models が満たします。
type ImagesModel interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ContentModel は genai の GenerateContent API です。*genai.Models が満たします。
type ContentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	_ PartsModel   = (gemini.GenerativeModel)(nil)
	_ ImagesModel  = (*genai.Models)(nil)
	_ ContentModel = (*genai.Models)(nil)
)
