package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// supportedAspectRatios は Imagen / Gemini が受け付けるアスペクト比なのだ。
var supportedAspectRatios = []struct {
	label string
	ratio float64
}{
	{"1:1", 1},
	{"3:4", 3.0 / 4},
	{"4:3", 4.0 / 3},
	{"9:16", 9.0 / 16},
	{"16:9", 16.0 / 9},
}

// seedToPtrInt32 は domain の *int64 を SDK 用の *int32 に変換するのだ。
// Imagen API は int32 を期待しているための調整なのだ。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}

// dereferenceSeed は *int64 を安全に int64 に変換するのだ。
// nil の場合はデフォルト値（0）を返すのだよ。
func dereferenceSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}

// sizeToAspectRatio は "WIDTHxHEIGHT" を一番近い対応アスペクト比に丸めるのだ。
// 空文字は "1:1" として扱うのだ。
func sizeToAspectRatio(size string) (string, error) {
	if size == "" {
		return "1:1", nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return "", fmt.Errorf("invalid image size: %q", size)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return "", fmt.Errorf("invalid image size: %q", size)
	}

	target := float64(w) / float64(h)
	best := supportedAspectRatios[0]
	for _, c := range supportedAspectRatios[1:] {
		if math.Abs(math.Log(c.ratio/target)) < math.Abs(math.Log(best.ratio/target)) {
			best = c
		}
	}
	return best.label, nil
}

// aspectRatioFor はリクエストの AspectRatio を優先し、なければ Size から求めるのだ。
func aspectRatioFor(req domain.ImageGenerationRequest) (string, error) {
	if req.AspectRatio != "" {
		return req.AspectRatio, nil
	}
	size := req.Size
	if size == "" {
		size = domain.DefaultImageSize
	}
	return sizeToAspectRatio(size)
}
