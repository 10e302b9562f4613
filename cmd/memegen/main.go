package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shouni/gemini-meme-kit/pkg/config"
	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/gemini-meme-kit/pkg/httpapi"
	"github.com/shouni/gemini-meme-kit/pkg/imgutil"
	"github.com/shouni/gemini-meme-kit/pkg/meme"
	"github.com/shouni/gemini-meme-kit/pkg/template"
)

// textList は繰り返し指定できる -text フラグです。
type textList []string

func (t *textList) String() string { return strings.Join(*t, " | ") }

func (t *textList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	var texts textList
	configPath := flag.String("conf", "", "path to config file (yaml)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the config")
	templateID := flag.String("template", template.DefaultID, "template id")
	flag.Var(&texts, "text", "overlay text for the next zone (repeatable)")
	prompt := flag.String("prompt", "", "additional context for AI generation")
	useAI := flag.Bool("ai", true, "try remote AI generation first")
	outDir := flag.String("out", ".", "output directory")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a single generation")
	list := flag.Bool("list", false, "list templates and exit")
	flag.Parse()

	if *list {
		for _, t := range template.Builtin().All() {
			fmt.Printf("%-16s %s (%d zones)\n", t.ID, t.Name, len(t.Zones))
		}
		return
	}

	conf, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := setupLogger(conf.Env)
	slog.SetDefault(log)
	log.With(
		slog.String("config", *configPath),
		slog.String("env", conf.Env),
		slog.String("provider", conf.Provider),
	).Info("starting memegen")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, cleanup, err := newMemeGenerator(ctx, conf)
	if err != nil {
		log.Error("initialization failed", slog.Any("error", err))
		os.Exit(1)
	}

	if *serve {
		err = runServer(ctx, conf, gen)
	} else {
		var path string
		path, err = runOnce(ctx, gen, domain.GenerationRequest{
			TemplateID: *templateID,
			Texts:      texts,
			Prompt:     *prompt,
			UseAI:      *useAI,
		}, *outDir, time.Now())
		if err == nil {
			fmt.Println(path)
		}
	}
	cleanup()
	if err != nil {
		log.Error("memegen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// runOnce は1枚生成してファイルに書き出し、そのパスを返します。
func runOnce(ctx context.Context, gen *meme.Generator, req domain.GenerationRequest, outDir string, now time.Time) (string, error) {
	res, err := gen.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Notice != "" {
		slog.WarnContext(ctx, res.Notice)
	}

	mimeType, data, err := imgutil.ParseDataURI(res.ImageURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, outputName(req.TemplateID, mimeType, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// outputName は保存名を返します。リモート生成が PNG 以外を返した場合は拡張子を合わせます。
func outputName(templateID, mimeType string, now time.Time) string {
	name := domain.DownloadFilename(templateID, now)
	switch mimeType {
	case "image/jpeg":
		return strings.TrimSuffix(name, ".png") + ".jpg"
	case "image/webp":
		return strings.TrimSuffix(name, ".png") + ".webp"
	default:
		return name
	}
}

func runServer(ctx context.Context, conf *config.Config, gen *meme.Generator) error {
	app, err := httpapi.NewApp(gen, template.Builtin())
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              conf.ListenAddr,
		Handler:           httpapi.NewRouter(app, conf.HTTPTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", conf.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
