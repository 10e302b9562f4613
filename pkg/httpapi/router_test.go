package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"github.com/shouni/gemini-meme-kit/pkg/template"
)

func newTestRouter(t *testing.T, memes *mockMemes) http.Handler {
	t.Helper()
	app, err := NewApp(memes, template.Builtin())
	require.NoError(t, err)
	app.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return NewRouter(app, 5*time.Second)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApp(t *testing.T) {
	_, err := NewApp(nil, template.Builtin())
	assert.Error(t, err)
	_, err = NewApp(&mockMemes{}, nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(t, &mockMemes{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListTemplates(t *testing.T) {
	rec := serve(newTestRouter(t, &mockMemes{}), http.MethodGet, "/v1/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []struct {
		ID        string            `json:"id"`
		Name      string            `json:"name"`
		Zones     []domain.TextZone `json:"zones"`
		ImagePath string            `json:"image_path"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, len(template.Builtin().IDs()))

	var drake bool
	for _, v := range views {
		assert.Empty(t, v.ImagePath, "asset paths stay internal")
		if v.ID == "drake" {
			drake = true
			assert.Equal(t, "Drake Hotline Bling", v.Name)
			assert.Len(t, v.Zones, 2)
		}
	}
	assert.True(t, drake)
}

func TestCreateMeme(t *testing.T) {
	t.Run("成功時は 200 と結果の JSON を返すのだ", func(t *testing.T) {
		memes := &mockMemes{}
		rec := serve(newTestRouter(t, memes), http.MethodPost, "/v1/memes", `{"template_id":"drake","texts":["a","b"],"prompt":"ctx","use_ai":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var res domain.GenerationResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.True(t, res.UsedFallback)
		assert.True(t, strings.HasPrefix(res.ImageURL, "data:image/png;base64,"))
		assert.Equal(t, "image/png", res.MimeType)

		assert.Equal(t, domain.GenerationRequest{TemplateID: "drake", Texts: []string{"a", "b"}, Prompt: "ctx", UseAI: true}, memes.lastReq)
	})

	t.Run("壊れた JSON は 400 なのだ", func(t *testing.T) {
		memes := &mockMemes{}
		rec := serve(newTestRouter(t, memes), http.MethodPost, "/v1/memes", `{"template_id":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, memes.calls)
	})

	t.Run("AllMethodsFailed は 500 と固定メッセージなのだ", func(t *testing.T) {
		memes := &mockMemes{
			generateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
				return nil, &domain.AllMethodsFailedError{Local: errors.New("disk on fire")}
			},
		}
		rec := serve(newTestRouter(t, memes), http.MethodPost, "/v1/memes", `{"template_id":"drake"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "meme generation failed", body["error"])
	})

	t.Run("GET は許可しないのだ", func(t *testing.T) {
		rec := serve(newTestRouter(t, &mockMemes{}), http.MethodGet, "/v1/memes", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestDownloadMeme(t *testing.T) {
	t.Run("画像を添付ファイルとして返すのだ", func(t *testing.T) {
		rec := serve(newTestRouter(t, &mockMemes{}), http.MethodPost, "/v1/memes/download", `{"template_id":"doge","texts":["wow"]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="meme-doge-1700000000000.png"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "true", rec.Header().Get("X-Meme-Used-Fallback"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("生成失敗は 500 なのだ", func(t *testing.T) {
		memes := &mockMemes{
			generateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
				return nil, &domain.AllMethodsFailedError{Local: errors.New("x")}
			},
		}
		rec := serve(newTestRouter(t, memes), http.MethodPost, "/v1/memes/download", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestListTemplates_StaticSource(t *testing.T) {
	app, err := NewApp(&mockMemes{}, staticTemplates{{ID: "only", Name: "Only", Zones: []domain.TextZone{{X: 1, Y: 1, Width: 10, Height: 10}}}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.ListTemplates(rec, httptest.NewRequest(http.MethodGet, "/v1/templates", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"only","name":"Only","zones":[{"x":1,"y":1,"width":10,"height":10}]}]`, rec.Body.String())
}
