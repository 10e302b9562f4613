package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/shouni/gemini-meme-kit/pkg/canvas"
	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/gemini-meme-kit/pkg/template"
)

// TemplateSource はテンプレート定義の参照元です。template.Registry が満たします。
type TemplateSource interface {
	Lookup(id string) domain.TemplateConfig
}

// ImageLoader はベース画像の読み込み元です。assets.Loader が満たします。
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Compositor はテンプレート画像にテキストを重ねてミーム画像を作るローカル生成器です。
type Compositor struct {
	templates  TemplateSource
	loader     ImageLoader
	newSurface canvas.Factory
	width      int
	height     int
	fit        FitPolicy
}

// Option は Compositor の任意設定です。
type Option func(*Compositor)

// WithFitPolicy はベース画像の配置方法を設定します。既定は FitStretch です。
func WithFitPolicy(p FitPolicy) Option {
	return func(c *Compositor) { c.fit = p }
}

// New は依存関係を注入して Compositor を初期化します。
func New(templates TemplateSource, loader ImageLoader, newSurface canvas.Factory, opts ...Option) (*Compositor, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if newSurface == nil {
		return nil, fmt.Errorf("surface factory is required")
	}

	c := &Compositor{
		templates:  templates,
		loader:     loader,
		newSurface: newSurface,
		width:      template.CanvasWidth,
		height:     template.CanvasHeight,
		fit:        FitStretch,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Render はテンプレートを解決し、texts[i] を Zones[i] に描画した PNG を返します。
// texts が Zones より短い場合や空文字の要素は、そのゾーンを描画しません。
//
// ベース画像が読めない場合は *domain.TemplateResourceError、
// 描画やエンコードの失敗は *domain.CompositionError を返します。
func (c *Compositor) Render(ctx context.Context, templateID string, texts []string) ([]byte, error) {
	cfg := c.templates.Lookup(templateID)

	base, err := c.loader.Load(ctx, cfg.ImagePath)
	if err != nil {
		return nil, &domain.TemplateResourceError{TemplateID: cfg.ID, ImagePath: cfg.ImagePath, Err: err}
	}

	surface, err := c.newSurface(c.width, c.height)
	if err != nil {
		return nil, &domain.CompositionError{TemplateID: cfg.ID, Zone: -1, Err: err}
	}
	surface.DrawImage(fitImage(base, c.width, c.height, c.fit), 0, 0)

	for i, zone := range cfg.Zones {
		if i >= len(texts) {
			break
		}
		text := strings.TrimSpace(texts[i])
		if text == "" {
			continue
		}
		if err := drawZone(surface, zone, text); err != nil {
			return nil, &domain.CompositionError{TemplateID: cfg.ID, Zone: i, Err: err}
		}
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return nil, &domain.CompositionError{TemplateID: cfg.ID, Zone: -1, Err: fmt.Errorf("encode png: %w", err)}
	}
	return buf.Bytes(), nil
}

func drawZone(s canvas.Surface, zone domain.TextZone, text string) error {
	size := zone.EffectiveFontSize()
	if err := s.SetFontSize(float64(size)); err != nil {
		return err
	}

	align := zone.EffectiveAlign()
	x := float64(zone.X)
	if align == domain.AlignCenter {
		x += float64(zone.Width) / 2
	}
	y := float64(zone.Y + size)
	lineHeight := float64(size) * LineHeightFactor

	for _, line := range WrapText(strings.ToUpper(text), float64(zone.Width), s.MeasureText) {
		s.DrawText(line, x, y, align)
		y += lineHeight
	}
	return nil
}
