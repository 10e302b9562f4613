package canvas

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// DefaultOutlineWidth は縁取りの太さ(px)です。
const DefaultOutlineWidth = 3

var (
	fillColor    = color.White
	outlineColor = color.Black
)

// GGSurface は fogleman/gg による Surface の実装です。
type GGSurface struct {
	dc      *gg.Context
	font    *truetype.Font
	faces   map[float64]font.Face
	outline int
}

// NewGGSurface は白で塗りつぶした width x height の描画面を作成します。
func NewGGSurface(width, height int, f *truetype.Font) *GGSurface {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	return &GGSurface{
		dc:      dc,
		font:    f,
		faces:   make(map[float64]font.Face),
		outline: DefaultOutlineWidth,
	}
}

// NewGGFactory はフォントを共有する GGSurface の Factory を返します。
func NewGGFactory(f *truetype.Font) Factory {
	return func(width, height int) (Surface, error) {
		if f == nil {
			return nil, errors.New("font is required")
		}
		if width <= 0 || height <= 0 {
			return nil, errors.New("surface size must be positive")
		}
		return NewGGSurface(width, height, f), nil
	}
}

func (s *GGSurface) DrawImage(img image.Image, x, y int) {
	s.dc.DrawImage(img, x, y)
}

func (s *GGSurface) SetFontSize(size float64) error {
	if s.font == nil {
		return errors.New("no font loaded")
	}
	if size <= 0 {
		return errors.New("font size must be positive")
	}
	face, ok := s.faces[size]
	if !ok {
		face = truetype.NewFace(s.font, &truetype.Options{Size: size})
		s.faces[size] = face
	}
	s.dc.SetFontFace(face)
	return nil
}

func (s *GGSurface) MeasureText(text string) float64 {
	w, _ := s.dc.MeasureString(text)
	return w
}

func (s *GGSurface) DrawText(text string, x, y float64, align domain.Align) {
	ax := 0.0
	if align == domain.AlignCenter {
		ax = 0.5
	}

	// 縁取りは円形にずらして重ね描きする
	r := s.outline
	s.dc.SetColor(outlineColor)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if (dx == 0 && dy == 0) || dx*dx+dy*dy > r*r {
				continue
			}
			s.dc.DrawStringAnchored(text, x+float64(dx), y+float64(dy), ax, 0)
		}
	}

	s.dc.SetColor(fillColor)
	s.dc.DrawStringAnchored(text, x, y, ax, 0)
}

func (s *GGSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Image は描画結果を返します。
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

var _ Surface = (*GGSurface)(nil)
