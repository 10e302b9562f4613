package domain

import (
	"encoding/base64"
	"net/http"
)

// DefaultImageSize はリモート生成に要求する画像サイズです。
const DefaultImageSize = "1024x1024"

// ImageGenerationRequest はリモート画像生成への単一の要求です。
type ImageGenerationRequest struct {
	Prompt         string
	NegativePrompt string
	Size           string // "1024x1024" 形式。AspectRatio が空のときに比率へ変換される
	AspectRatio    string
	Seed           *int64 // nil でランダム
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// ContentType は MimeType を返します。未設定の場合はデータから推定します。
func (r *ImageResponse) ContentType() string {
	if r.MimeType != "" {
		return r.MimeType
	}
	return http.DetectContentType(r.Data)
}

// DataURI は画像を data:<mime>;base64,<bytes> 形式の文字列に変換します。
func (r *ImageResponse) DataURI() string {
	return "data:" + r.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}
