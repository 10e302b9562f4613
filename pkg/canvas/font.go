package canvas

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
)

// LoadFont は TrueType フォントを読み込みます。
// path が空のときは埋め込みの Go Bold を使います。
func LoadFont(path string) (*truetype.Font, error) {
	if path == "" {
		return truetype.Parse(gobold.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}
