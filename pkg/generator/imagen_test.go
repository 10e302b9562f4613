package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
	"google.golang.org/genai"
)

func TestImagenGenerator_GenerateImage(t *testing.T) {
	ctx := context.Background()
	seed := int64(42)
	req := domain.ImageGenerationRequest{
		Prompt:         "a cat meme",
		NegativePrompt: "watermark",
		Size:           "1024x1024",
		Seed:           &seed,
	}

	t.Run("1枚だけ要求し、サイズからアスペクト比を決めるのだ", func(t *testing.T) {
		m := &mockImagesModel{}
		gen, err := NewImagenGenerator(m, "")
		require.NoError(t, err)

		resp, err := gen.GenerateImage(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []byte("imagen-png"), resp.Data)
		assert.Equal(t, "image/png", resp.MimeType)

		assert.Equal(t, DefaultImagenModel, m.lastModel)
		assert.Equal(t, "a cat meme", m.lastPrompt)
		require.NotNil(t, m.lastConfig)
		assert.Equal(t, int32(1), m.lastConfig.NumberOfImages)
		assert.Equal(t, "1:1", m.lastConfig.AspectRatio)
		assert.Equal(t, "image/png", m.lastConfig.OutputMIMEType)
	})

	t.Run("既定では seed と negativePrompt を送らないのだ", func(t *testing.T) {
		m := &mockImagesModel{}
		gen, err := NewImagenGenerator(m, "imagen-x")
		require.NoError(t, err)

		resp, err := gen.GenerateImage(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, m.lastConfig.Seed)
		assert.Empty(t, m.lastConfig.NegativePrompt)
		assert.Zero(t, resp.UsedSeed)
	})

	t.Run("WithExtendedParams なら seed と negativePrompt を送るのだ", func(t *testing.T) {
		m := &mockImagesModel{}
		gen, err := NewImagenGenerator(m, "imagen-x", WithExtendedParams())
		require.NoError(t, err)

		resp, err := gen.GenerateImage(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, m.lastConfig.Seed)
		assert.Equal(t, int32(42), *m.lastConfig.Seed)
		assert.Equal(t, "watermark", m.lastConfig.NegativePrompt)
		assert.Equal(t, seed, resp.UsedSeed)
	})

	t.Run("MIME がなければ中身から判定するのだ", func(t *testing.T) {
		pngHeader := []byte("\x89PNG\r\n\x1a\n0000")
		m := &mockImagesModel{
			generateImagesFunc: func(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: pngHeader}}}}, nil
			},
		}
		gen, err := NewImagenGenerator(m, "")
		require.NoError(t, err)

		resp, err := gen.GenerateImage(ctx, domain.ImageGenerationRequest{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", resp.MimeType)
	})

	failures := []struct {
		name string
		resp *genai.GenerateImagesResponse
		err  error
	}{
		{"API エラー", nil, errors.New("quota exceeded")},
		{"画像なし", &genai.GenerateImagesResponse{}, nil},
		{"フィルタで除外", &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{{RAIFilteredReason: "blocked"}}}, nil},
		{"空のバイト列", &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{}}}}, nil},
	}
	for _, tt := range failures {
		t.Run("失敗: "+tt.name, func(t *testing.T) {
			m := &mockImagesModel{
				generateImagesFunc: func(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
					return tt.resp, tt.err
				},
			}
			gen, err := NewImagenGenerator(m, "")
			require.NoError(t, err)

			out, err := gen.GenerateImage(ctx, req)
			assert.Error(t, err)
			assert.Nil(t, out)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestNewImagenGenerator(t *testing.T) {
	_, err := NewImagenGenerator(nil, "")
	assert.Error(t, err)

	gen, err := NewImagenGenerator(&mockImagesModel{}, "")
	require.NoError(t, err)
	assert.Equal(t, "imagen", gen.Provider())
}
