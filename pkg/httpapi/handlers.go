package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/gemini-meme-kit/pkg/imgutil"
)

// maxRequestBytes は生成リクエスト本文の上限です。
const maxRequestBytes = 1 << 20

// MemeGenerator はミーム生成のユースケースです。meme.Generator が満たします。
type MemeGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// TemplateLister はテンプレート一覧の参照元です。template.Registry が満たします。
type TemplateLister interface {
	All() []domain.TemplateConfig
}

// App は HTTP ハンドラーが共有する依存関係です。
type App struct {
	memes     MemeGenerator
	templates TemplateLister
	now       func() time.Time
}

// NewApp は App を初期化します。
func NewApp(memes MemeGenerator, templates TemplateLister) (*App, error) {
	if memes == nil {
		return nil, fmt.Errorf("memes (MemeGenerator) is required")
	}
	if templates == nil {
		return nil, fmt.Errorf("templates (TemplateLister) is required")
	}
	return &App{memes: memes, templates: templates, now: time.Now}, nil
}

type templateView struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Zones []domain.TextZone `json:"zones"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Health は死活監視用のエンドポイントです。
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTemplates は利用できるテンプレートを返します。
func (a *App) ListTemplates(w http.ResponseWriter, r *http.Request) {
	all := a.templates.All()
	views := make([]templateView, 0, len(all))
	for _, t := range all {
		views = append(views, templateView{ID: t.ID, Name: t.Name, Zones: t.Zones})
	}
	a.json(w, http.StatusOK, views)
}

// CreateMeme はミームを生成して JSON で返します。
func (a *App) CreateMeme(w http.ResponseWriter, r *http.Request) {
	_, res, ok := a.generate(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, res)
}

// DownloadMeme はミームを生成して画像そのものを添付ファイルとして返します。
func (a *App) DownloadMeme(w http.ResponseWriter, r *http.Request) {
	req, res, ok := a.generate(w, r)
	if !ok {
		return
	}
	mimeType, data, err := imgutil.ParseDataURI(res.ImageURL)
	if err != nil {
		slog.ErrorContext(r.Context(), "生成結果の data URI を解釈できません", "error", err)
		a.json(w, http.StatusInternalServerError, errorBody{Error: "meme generation failed"})
		return
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = "meme"
	}
	filename := domain.DownloadFilename(templateID, a.now())

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Meme-Used-Fallback", strconv.FormatBool(res.UsedFallback))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// generate は本文を解釈して生成し、失敗時は応答を書き込んで false を返します。
func (a *App) generate(w http.ResponseWriter, r *http.Request) (domain.GenerationRequest, *domain.GenerationResult, bool) {
	var req domain.GenerationRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return req, nil, false
	}

	res, err := a.memes.Generate(r.Context(), req)
	if err != nil {
		var failed *domain.AllMethodsFailedError
		if !errors.As(err, &failed) {
			slog.ErrorContext(r.Context(), "想定外のエラーです", "error", err)
		}
		a.json(w, http.StatusInternalServerError, errorBody{Error: "meme generation failed"})
		return req, nil, false
	}
	return req, res, true
}
