package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenaiPartsModel は genai クライアントを PartsModel として使うためのアダプターです。
// go-gemini-client の完全なクライアントを用意しない場合に使います。
type GenaiPartsModel struct {
	models ContentModel
}

// NewGenaiPartsModel は GenaiPartsModel を初期化します。
func NewGenaiPartsModel(models ContentModel) (*GenaiPartsModel, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ContentModel) is required")
	}
	return &GenaiPartsModel{models: models}, nil
}

// GenerateWithParts は parts を1つのユーザー発話として送り、画像出力を要求します。
func (m *GenaiPartsModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityText), string(genai.ModalityImage)},
		Seed:               seedToPtrInt32(opts.Seed),
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}
	if opts.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := m.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

var _ PartsModel = (*GenaiPartsModel)(nil)
