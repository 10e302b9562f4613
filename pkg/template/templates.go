package template

import "github.com/shouni/gemini-meme-kit/pkg/domain"

// builtins は組み込みテンプレートの定義です。座標は 800x600 のキャンバス基準です。
var builtins = []domain.TemplateConfig{
	{
		// 上下2段の古典的なミーム。他の定義が見つからないときの既定値でもある。
		ID:        DefaultID,
		Name:      "Classic Top/Bottom",
		ImagePath: "default.png",
		Zones: []domain.TextZone{
			{X: 10, Y: 10, Width: 780, Height: 120, Align: domain.AlignCenter},
			{X: 10, Y: 470, Width: 780, Height: 120, Align: domain.AlignCenter},
		},
	},
	{
		ID:        "drake",
		Name:      "Drake Hotline Bling",
		ImagePath: "drake.png",
		Zones: []domain.TextZone{
			{X: 410, Y: 20, Width: 370, Height: 260},
			{X: 410, Y: 320, Width: 370, Height: 260},
		},
	},
	{
		ID:        "distracted",
		Name:      "Distracted Boyfriend",
		ImagePath: "distracted-boyfriend.png",
		Zones: []domain.TextZone{
			{X: 40, Y: 380, Width: 220, Height: 120, FontSize: 32, Align: domain.AlignCenter},
			{X: 300, Y: 300, Width: 220, Height: 120, FontSize: 32, Align: domain.AlignCenter},
			{X: 560, Y: 360, Width: 220, Height: 120, FontSize: 32, Align: domain.AlignCenter},
		},
	},
	{
		ID:        "doge",
		Name:      "Doge",
		ImagePath: "doge.png",
		Zones: []domain.TextZone{
			{X: 40, Y: 40, Width: 300, Height: 80, FontSize: 36},
			{X: 460, Y: 140, Width: 300, Height: 80, FontSize: 36},
			{X: 60, Y: 420, Width: 300, Height: 80, FontSize: 36},
			{X: 440, Y: 500, Width: 320, Height: 80, FontSize: 36},
		},
	},
	{
		ID:        "change-my-mind",
		Name:      "Change My Mind",
		ImagePath: "change-my-mind.png",
		Zones: []domain.TextZone{
			{X: 360, Y: 380, Width: 360, Height: 140, FontSize: 36, Align: domain.AlignCenter},
		},
	},
	{
		ID:        "two-buttons",
		Name:      "Two Buttons",
		ImagePath: "two-buttons.png",
		Zones: []domain.TextZone{
			{X: 100, Y: 60, Width: 200, Height: 100, FontSize: 28, Align: domain.AlignCenter},
			{X: 420, Y: 40, Width: 200, Height: 100, FontSize: 28, Align: domain.AlignCenter},
			{X: 100, Y: 440, Width: 600, Height: 140, Align: domain.AlignCenter},
		},
	},
	{
		ID:        "expanding-brain",
		Name:      "Expanding Brain",
		ImagePath: "expanding-brain.png",
		Zones: []domain.TextZone{
			{X: 10, Y: 10, Width: 390, Height: 130, FontSize: 36},
			{X: 10, Y: 160, Width: 390, Height: 130, FontSize: 36},
			{X: 10, Y: 310, Width: 390, Height: 130, FontSize: 36},
			{X: 10, Y: 460, Width: 390, Height: 130, FontSize: 36},
		},
	},
}
