package meme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/gemini-meme-kit/pkg/generator"
	"github.com/shouni/gemini-meme-kit/pkg/template"
)

// FallbackNotice は AI 生成を要求されたがローカル合成で応答したときの案内文です。
const FallbackNotice = "AI generation failed. Using fallback method instead."

const localMimeType = "image/png"

// Renderer はテンプレートにテキストを合成するローカル生成器です。compositor.Compositor が満たします。
type Renderer interface {
	Render(ctx context.Context, templateID string, texts []string) ([]byte, error)
}

// TemplateSource はプロンプト組み立てに使うテンプレート定義の参照元です。
type TemplateSource interface {
	Lookup(id string) domain.TemplateConfig
}

// Generator はリモート生成を1回だけ試し、失敗したらローカル合成に切り替えるオーケストレーターです。
type Generator struct {
	remote         generator.ImageGenerator
	renderer       Renderer
	templates      TemplateSource
	remoteTimeout  time.Duration
	negativePrompt string
	newRequestID   func() string
}

// Option は Generator の任意設定です。
type Option func(*Generator)

// WithRemoteTimeout はリモート生成1回あたりの制限時間を設定します。0 は無制限です。
// ローカル合成には適用されません。
func WithRemoteTimeout(d time.Duration) Option {
	return func(g *Generator) { g.remoteTimeout = d }
}

// WithTemplates はテンプレート定義の参照元を差し替えます。既定は組み込みテンプレートです。
func WithTemplates(src TemplateSource) Option {
	return func(g *Generator) {
		if src != nil {
			g.templates = src
		}
	}
}

// WithNegativePrompt はリモート生成に渡すネガティブプロンプトを設定します。
func WithNegativePrompt(p string) Option {
	return func(g *Generator) { g.negativePrompt = p }
}

// New は Generator を初期化します。remote は nil でもよく、その場合 AI 要求は常にフォールバックします。
func New(remote generator.ImageGenerator, renderer Renderer, opts ...Option) (*Generator, error) {
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}

	g := &Generator{
		remote:       remote,
		renderer:     renderer,
		templates:    template.Builtin(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate はミーム画像を1枚生成します。
//
// UseAI が true ならリモート生成を1回だけ試し、成功すればその画像を返します。
// 失敗した場合や UseAI が false の場合はローカル合成の結果を UsedFallback=true で返します。
// 両方が失敗したときだけ *domain.AllMethodsFailedError を返し、結果は nil です。
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	logger := slog.With("request_id", g.newRequestID(), "template_id", req.TemplateID, "use_ai", req.UseAI)

	var remoteErr error
	if req.UseAI {
		res, err := g.generateRemote(ctx, req)
		if err == nil {
			logger.InfoContext(ctx, "リモート生成に成功しました", "mime_type", res.MimeType)
			return res, nil
		}
		remoteErr = err
		logger.WarnContext(ctx, "リモート生成に失敗したためローカル合成に切り替えます", "error", err)
	}

	data, err := g.renderer.Render(ctx, req.TemplateID, req.Texts)
	if err != nil {
		failed := &domain.AllMethodsFailedError{Remote: remoteErr, Local: err}
		logger.ErrorContext(ctx, "ミーム生成に失敗しました", "error", failed)
		return nil, failed
	}

	resp := &domain.ImageResponse{Data: data, MimeType: localMimeType}
	res := &domain.GenerationResult{
		ImageURL:     resp.DataURI(),
		UsedFallback: true,
		MimeType:     localMimeType,
	}
	if req.UseAI {
		res.Notice = FallbackNotice
	}
	logger.InfoContext(ctx, "ローカル合成で生成しました", "bytes", len(data))
	return res, nil
}

func (g *Generator) generateRemote(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	provider := providerName(g.remote)
	if g.remote == nil {
		return nil, &domain.RemoteGenerationError{Provider: provider, Err: domain.ErrRemoteUnavailable}
	}

	if g.remoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.remoteTimeout)
		defer cancel()
	}

	cfg := g.templates.Lookup(req.TemplateID)
	resp, err := g.remote.GenerateImage(ctx, domain.ImageGenerationRequest{
		Prompt:         BuildPrompt(cfg, req.Texts, req.Prompt),
		NegativePrompt: g.negativePrompt,
		Size:           domain.DefaultImageSize,
	})
	if err != nil {
		return nil, &domain.RemoteGenerationError{Provider: provider, Err: err}
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, &domain.RemoteGenerationError{Provider: provider, Err: errors.New("empty image payload")}
	}

	return &domain.GenerationResult{
		ImageURL:     resp.DataURI(),
		UsedFallback: false,
		MimeType:     resp.ContentType(),
	}, nil
}

func providerName(remote generator.ImageGenerator) string {
	if remote == nil {
		return "none"
	}
	if p, ok := remote.(interface{ Provider() string }); ok {
		return p.Provider()
	}
	return fmt.Sprintf("%T", remote)
}
