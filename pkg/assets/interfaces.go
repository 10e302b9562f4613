package assets

import (
	"context"
	"io"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// HTTPClient は URL からデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ObjectReader は gs:// や s3:// のオブジェクトを開くためのインターフェースです。
type ObjectReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// ImageCacher は取得済みのベース画像データをキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// go-http-kit, go-remote-io, go-cache の実装をそのまま注入できること
var (
	_ HTTPClient   = (httpkit.ClientInterface)(nil)
	_ ObjectReader = (remoteio.InputReader)(nil)
	_ ImageCacher  = (*cache.Cache)(nil)
)
