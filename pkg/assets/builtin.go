package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.png
var builtinFS embed.FS

// Builtin は同梱の組み込みテンプレート画像を返します。
// 参照名はテンプレートの ImagePath（例: "drake.png"）と同じです。
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
