package compositor

import (
	"context"
	"errors"
	"image"
	"io"
	"unicode/utf8"

	"github.com/shouni/gemini-meme-kit/pkg/canvas"
	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// --- Mocks ---

type drawCall struct {
	text  string
	x, y  float64
	align domain.Align
}

// fakeSurface は描画呼び出しを記録するだけの Surface なのだ。
// 文字幅は1文字 10px として計測するのだ。
type fakeSurface struct {
	images    []image.Image
	fontSizes []float64
	draws     []drawCall
	fontErr   error
	encodeErr error
}

func (s *fakeSurface) DrawImage(img image.Image, x, y int) { s.images = append(s.images, img) }

func (s *fakeSurface) SetFontSize(size float64) error {
	if s.fontErr != nil {
		return s.fontErr
	}
	s.fontSizes = append(s.fontSizes, size)
	return nil
}

func (s *fakeSurface) MeasureText(text string) float64 {
	return float64(utf8.RuneCountInString(text) * 10)
}

func (s *fakeSurface) DrawText(text string, x, y float64, align domain.Align) {
	s.draws = append(s.draws, drawCall{text: text, x: x, y: y, align: align})
}

func (s *fakeSurface) EncodePNG(w io.Writer) error {
	if s.encodeErr != nil {
		return s.encodeErr
	}
	_, err := w.Write([]byte("fake-png"))
	return err
}

func factoryOf(s *fakeSurface) canvas.Factory {
	return func(width, height int) (canvas.Surface, error) { return s, nil }
}

type fakeLoader struct {
	img     image.Image
	err     error
	lastRef string
}

func (l *fakeLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	l.lastRef = ref
	if l.err != nil {
		return nil, l.err
	}
	if l.img == nil {
		return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
	}
	return l.img, nil
}

var errBoom = errors.New("boom")
