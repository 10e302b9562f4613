package canvas

import (
	"image"
	"io"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// Surface はコンポジターが使う最小限の描画面です。
// ラスタライズの実装を差し替えられるよう、ゾーン処理と折り返しはこの上に組み立てます。
type Surface interface {
	// DrawImage は img を (x, y) を左上として描画します。
	DrawImage(img image.Image, x, y int)
	// SetFontSize は以降の計測と描画に使う文字サイズ(px)を設定します。
	SetFontSize(size float64) error
	// MeasureText は現在のフォントで s を描画したときの幅を返します。
	MeasureText(s string) float64
	// DrawText は白塗り・黒縁取りで s を描画します。y はベースラインです。
	// AlignCenter のとき x は中心、それ以外は左端を表します。
	DrawText(s string, x, y float64, align domain.Align)
	// EncodePNG は描画面を PNG として書き出します。
	EncodePNG(w io.Writer) error
}

// Factory は指定サイズの Surface を生成します。
type Factory func(width, height int) (Surface, error)
