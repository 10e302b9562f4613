package template

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

const (
	// DefaultID は未知の ID を引いたときに返されるテンプレートの ID です。
	DefaultID = "default"

	CanvasWidth  = 800
	CanvasHeight = 600
)

// Registry はテンプレート ID から TemplateConfig への不変のテーブルです。
// 構築後は読み取り専用なので、複数の goroutine から同時に参照できます。
type Registry struct {
	byID map[string]domain.TemplateConfig
	ids  []string
}

// NewRegistry は定義を検証してレジストリを構築します。DefaultID の定義は必須です。
func NewRegistry(configs ...domain.TemplateConfig) (*Registry, error) {
	r := &Registry{byID: make(map[string]domain.TemplateConfig, len(configs))}
	for _, cfg := range configs {
		if cfg.ID == "" {
			return nil, errors.New("template id is required")
		}
		if _, dup := r.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate template id: %s", cfg.ID)
		}
		if err := Validate(cfg, CanvasWidth, CanvasHeight); err != nil {
			return nil, err
		}
		r.byID[cfg.ID] = clone(cfg)
		r.ids = append(r.ids, cfg.ID)
	}
	if _, ok := r.byID[DefaultID]; !ok {
		return nil, fmt.Errorf("template %q is required", DefaultID)
	}
	slices.Sort(r.ids)
	return r, nil
}

// Lookup は ID に対応する定義を返します。未知の ID には DefaultID の定義を返し、失敗しません。
func (r *Registry) Lookup(id string) domain.TemplateConfig {
	if cfg, ok := r.byID[id]; ok {
		return clone(cfg)
	}
	return clone(r.byID[DefaultID])
}

// Has は ID が登録済みかどうかを返します。
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs は登録済みの ID を昇順で返します。
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

// All は登録済みの定義を ID の昇順で返します。
func (r *Registry) All() []domain.TemplateConfig {
	out := make([]domain.TemplateConfig, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, clone(r.byID[id]))
	}
	return out
}

// Validate はゾーンが空でなく、すべてのゾーンがキャンバス内に収まることを検証します。
func Validate(cfg domain.TemplateConfig, width, height int) error {
	if cfg.ImagePath == "" {
		return fmt.Errorf("template %q: image path is required", cfg.ID)
	}
	if len(cfg.Zones) == 0 {
		return fmt.Errorf("template %q: at least one zone is required", cfg.ID)
	}
	for i, z := range cfg.Zones {
		if z.Width <= 0 || z.Height <= 0 {
			return fmt.Errorf("template %q zone %d: width and height must be positive", cfg.ID, i)
		}
		if z.X < 0 || z.Y < 0 || z.X+z.Width > width || z.Y+z.Height > height {
			return fmt.Errorf("template %q zone %d: outside %dx%d canvas", cfg.ID, i, width, height)
		}
		if z.FontSize < 0 {
			return fmt.Errorf("template %q zone %d: negative font size", cfg.ID, i)
		}
		if z.Align != "" && z.Align != domain.AlignLeft && z.Align != domain.AlignCenter {
			return fmt.Errorf("template %q zone %d: unknown align %q", cfg.ID, i, z.Align)
		}
	}
	return nil
}

func clone(cfg domain.TemplateConfig) domain.TemplateConfig {
	cfg.Zones = slices.Clone(cfg.Zones)
	return cfg
}

var std = mustNewRegistry(builtins...)

func mustNewRegistry(configs ...domain.TemplateConfig) *Registry {
	r, err := NewRegistry(configs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Builtin は組み込みテンプレートのレジストリを返します。
func Builtin() *Registry { return std }

// Lookup は組み込みレジストリから定義を引きます。
func Lookup(id string) domain.TemplateConfig { return std.Lookup(id) }
