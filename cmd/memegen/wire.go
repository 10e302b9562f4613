package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"
	"google.golang.org/genai"

	"github.com/shouni/gemini-meme-kit/pkg/assets"
	"github.com/shouni/gemini-meme-kit/pkg/canvas"
	"github.com/shouni/gemini-meme-kit/pkg/compositor"
	"github.com/shouni/gemini-meme-kit/pkg/config"
	"github.com/shouni/gemini-meme-kit/pkg/generator"
	"github.com/shouni/gemini-meme-kit/pkg/meme"
	"github.com/shouni/gemini-meme-kit/pkg/template"
)

// genaiModels は genai.Models のうちリモート生成器が使う部分です。
type genaiModels interface {
	generator.ImagesModel
	generator.ContentModel
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

// newObjectReader は asset_root が gs:// か s3:// のとき go-remote-io のリーダーを作成します。
// 戻り値の io.Closer はクライアントの解放に使います。それ以外の root では nil を返します。
func newObjectReader(ctx context.Context, scheme string) (assets.ObjectReader, io.Closer, error) {
	var (
		factory remoteio.IOFactory
		err     error
	)
	switch scheme {
	case "gs":
		factory, err = gcsfactory.New(ctx)
	case "s3":
		factory, err = s3factory.New(ctx)
	default:
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	reader, err := factory.InputReader()
	if err != nil {
		return nil, nil, errors.Join(err, factory.Close())
	}
	return reader, factory, nil
}

// newCompositor はローカル合成器を構成します。
func newCompositor(ctx context.Context, cfg *config.Config) (*compositor.Compositor, io.Closer, error) {
	font, err := canvas.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, nil, err
	}
	fit, err := compositor.ParseFitPolicy(cfg.FitPolicy)
	if err != nil {
		return nil, nil, err
	}

	opts := []assets.Option{
		assets.WithHTTPClient(httpkit.New(cfg.FetchTimeout)),
	}
	if cfg.CacheTTL > 0 {
		opts = append(opts, assets.WithCache(cache.New(cfg.CacheTTL, 2*cfg.CacheTTL), cfg.CacheTTL))
	}
	reader, closer, err := newObjectReader(ctx, cfg.AssetScheme())
	if err != nil {
		return nil, nil, fmt.Errorf("テンプレート画像のストレージ接続に失敗しました: %w", err)
	}
	if reader != nil {
		opts = append(opts, assets.WithObjectReader(reader))
	}
	loader := assets.NewLoader(cfg.AssetRoot, opts...)

	comp, err := compositor.New(template.Builtin(), loader, canvas.NewGGFactory(font), compositor.WithFitPolicy(fit))
	if err != nil {
		if closer != nil {
			err = errors.Join(err, closer.Close())
		}
		return nil, nil, err
	}
	return comp, closer, nil
}

// selectRemote は設定のプロバイダーに応じたリモート生成器を返します。
func selectRemote(cfg *config.Config, models genaiModels) (generator.ImageGenerator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		parts, err := generator.NewGenaiPartsModel(models)
		if err != nil {
			return nil, err
		}
		return generator.NewGeminiGenerator(parts, cfg.ImageModel)
	case config.ProviderImagen:
		return generator.NewImagenGenerator(models, cfg.ImageModel)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// newMemeGenerator はアプリケーション全体のミーム生成器を組み立てます。
// API キーがない場合や local_only の場合はリモート生成器なしで構成します。
// 戻り値の cleanup は終了時に必ず呼び出してください。
func newMemeGenerator(ctx context.Context, cfg *config.Config) (gen *meme.Generator, cleanup func(), err error) {
	comp, closer, err := newCompositor(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("ローカル合成器の初期化に失敗しました: %w", err)
	}
	cleanup = func() {
		if closer == nil {
			return
		}
		if err := closer.Close(); err != nil {
			slog.WarnContext(ctx, "ストレージクライアントのクローズに失敗しました", "error", err)
		}
	}
	defer func() {
		if err != nil {
			cleanup()
			cleanup = nil
		}
	}()

	var remote generator.ImageGenerator
	if cfg.RemoteEnabled() {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("genai クライアントの作成に失敗しました: %w", err)
		}
		if remote, err = selectRemote(cfg, client.Models); err != nil {
			return nil, nil, err
		}
	} else {
		slog.InfoContext(ctx, "リモート生成は無効です。ローカル合成のみで動作します")
	}

	gen, err = meme.New(remote, comp,
		meme.WithRemoteTimeout(cfg.RemoteTimeout),
		meme.WithNegativePrompt(cfg.NegativePrompt),
	)
	if err != nil {
		return nil, nil, err
	}
	return gen, cleanup, nil
}
