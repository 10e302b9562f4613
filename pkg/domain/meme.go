package domain

import (
	"fmt"
	"time"
)

// DefaultFontSize は TextZone.FontSize が未指定のときに使う文字サイズ(px)です。
const DefaultFontSize = 40

// Align はゾーン内での文字の横揃えです。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextZone はテンプレート画像上で1つのテキストを描画する矩形領域です。
// 座標はキャンバスのピクセル空間で表します。
type TextZone struct {
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	FontSize int   `json:"font_size,omitempty"` // 0 のとき DefaultFontSize
	Align    Align `json:"align,omitempty"`     // 空のとき AlignLeft
}

// EffectiveFontSize は既定値を適用した文字サイズを返します。
func (z TextZone) EffectiveFontSize() int {
	if z.FontSize <= 0 {
		return DefaultFontSize
	}
	return z.FontSize
}

// EffectiveAlign は既定値を適用した横揃えを返します。
func (z TextZone) EffectiveAlign() Align {
	if z.Align == AlignCenter {
		return AlignCenter
	}
	return AlignLeft
}

// TemplateConfig はミームテンプレートの定義です。
// プロセス起動時に一度だけ構築され、以降変更されません。
type TemplateConfig struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ImagePath string     `json:"image_path"`
	Zones     []TextZone `json:"zones"`
}

// GenerationRequest はミーム生成の1回分の要求です。
// Texts[i] は Zones[i] に対応し、欠けている要素はそのゾーンを描画しません。
type GenerationRequest struct {
	TemplateID string   `json:"template_id"`
	Texts      []string `json:"texts"`
	Prompt     string   `json:"prompt"` // リモート生成でのみ使用
	UseAI      bool     `json:"use_ai"`
}

// GenerationResult は生成結果です。ImageURL はどちらの経路でも data URI です。
type GenerationResult struct {
	ImageURL     string `json:"image_url"`
	UsedFallback bool   `json:"used_fallback"`
	MimeType     string `json:"mime_type"`
	Notice       string `json:"notice,omitempty"`
}

// DownloadFilename は保存時のファイル名を templateID と時刻から組み立てます。
func DownloadFilename(templateID string, t time.Time) string {
	return fmt.Sprintf("meme-%s-%d.png", templateID, t.UnixMilli())
}
