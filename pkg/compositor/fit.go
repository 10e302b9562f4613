package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// FitPolicy はベース画像をキャンバスに収める方法です。
type FitPolicy string

const (
	// FitStretch は縦横比を無視してキャンバス全体に引き伸ばします。ゾーン座標が画像と一致するため既定です。
	FitStretch FitPolicy = "stretch"
	// FitContain は縦横比を保って中央に配置し、余白を白で埋めます。
	FitContain FitPolicy = "contain"
)

// ParseFitPolicy は設定値を FitPolicy に変換します。空文字は FitStretch です。
func ParseFitPolicy(s string) (FitPolicy, error) {
	switch FitPolicy(s) {
	case "", FitStretch:
		return FitStretch, nil
	case FitContain:
		return FitContain, nil
	default:
		return "", fmt.Errorf("unknown fit policy: %q", s)
	}
}

func fitImage(img image.Image, width, height int, policy FitPolicy) image.Image {
	b := img.Bounds()
	if b.Empty() {
		return imaging.New(width, height, color.White)
	}
	if policy != FitContain {
		if b.Dx() == width && b.Dy() == height {
			return img
		}
		return imaging.Resize(img, width, height, imaging.Lanczos)
	}

	scale := math.Min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	dw := max(1, int(math.Round(float64(b.Dx())*scale)))
	dh := max(1, int(math.Round(float64(b.Dy())*scale)))

	bg := imaging.New(width, height, color.White)
	return imaging.PasteCenter(bg, imaging.Resize(img, dw, dh, imaging.Lanczos))
}
