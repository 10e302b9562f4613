package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/gemini-meme-kit/pkg/imgutil"
)

const cacheKeyPrefix = "template_image:"

// Loader はテンプレートのベース画像を参照文字列から読み込みます。
//
//   - 相対パス: ローカル FS（root の外には出られない）。root が URI ならその配下に解決
//   - http:// https://: SSRF 検査のうえ HTTPClient で取得
//   - gs:// s3://: ObjectReader で取得
type Loader struct {
	root       string
	local      fs.FS
	httpClient HTTPClient
	reader     ObjectReader
	cache      ImageCacher
	cacheTTL   time.Duration
	urlGuard   func(string) (bool, error)
}

// Option は Loader の任意設定です。
type Option func(*Loader)

// WithHTTPClient は http(s) の参照に使うクライアントを設定します。
func WithHTTPClient(c HTTPClient) Option {
	return func(l *Loader) { l.httpClient = c }
}

// WithObjectReader は gs:// s3:// の参照に使うリーダーを設定します。
func WithObjectReader(r ObjectReader) Option {
	return func(l *Loader) { l.reader = r }
}

// WithCache は取得したバイト列のキャッシュを設定します。nil ならキャッシュしません。
func WithCache(c ImageCacher, ttl time.Duration) Option {
	return func(l *Loader) {
		l.cache = c
		l.cacheTTL = ttl
	}
}

// NewLoader は root を相対参照の基準とする Loader を作成します。
// root が空なら組み込み画像、http(s):// gs:// s3:// ならリモート、それ以外はディレクトリです。
func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{root: root, urlGuard: IsSafeURL}
	switch {
	case root == "":
		l.local = Builtin()
	case !hasScheme(root):
		l.local = os.DirFS(root)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load は参照先の画像を取得してデコードします。
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return imgutil.DecodeImage(data)
}

// Fetch は参照先の生データを取得します。
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, errors.New("image reference is empty")
	}
	target, err := l.resolve(ref)
	if err != nil {
		return nil, err
	}

	cacheKey := cacheKeyPrefix + target
	if l.cache != nil {
		if val, ok := l.cache.Get(cacheKey); ok {
			if data, ok := val.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "ref", ref, "type", fmt.Sprintf("%T", val))
		}
	}

	data, err := l.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(cacheKey, data, l.cacheTTL)
	}
	return data, nil
}

// resolve は参照を取得先に変換します。URI はそのまま、相対参照は root 配下になります。
func (l *Loader) resolve(ref string) (string, error) {
	if hasScheme(ref) {
		return ref, nil
	}
	name := strings.TrimPrefix(filepath.ToSlash(ref), "/")
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("image path escapes asset root: %s", ref)
	}
	name = path.Clean(name)
	if hasScheme(l.root) {
		return strings.TrimSuffix(l.root, "/") + "/" + name, nil
	}
	return name, nil
}

func (l *Loader) fetch(ctx context.Context, target string) ([]byte, error) {
	scheme, _, remote := strings.Cut(target, "://")
	if !remote {
		if l.local == nil {
			return nil, fmt.Errorf("no local asset source for %s", target)
		}
		return fs.ReadFile(l.local, target)
	}

	switch strings.ToLower(scheme) {
	case "http", "https":
		if l.httpClient == nil {
			return nil, fmt.Errorf("no http client configured for %s", target)
		}
		safe, err := l.urlGuard(target)
		if err != nil {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
		}
		if !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %s", target)
		}
		return l.httpClient.FetchBytes(ctx, target)
	case "gs", "s3":
		if l.reader == nil {
			return nil, fmt.Errorf("no object reader configured for %s", target)
		}
		rc, err := l.reader.Open(ctx, target)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	default:
		return nil, fmt.Errorf("unsupported image reference scheme: %s", scheme)
	}
}

func hasScheme(s string) bool {
	scheme, _, ok := strings.Cut(s, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/\\")
}
