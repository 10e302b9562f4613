package meme

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-meme-kit/pkg/domain"
)

// styleHint は合成結果と見た目を揃えるための描画指示です。
const styleHint = "Render every caption in bold white Impact-style capital letters with a thick black outline, placed in the template's usual caption positions."

// BuildPrompt はテンプレートの表示名、重ねるテキスト、利用者の補足からリモート生成用のプロンプトを組み立てます。
func BuildPrompt(cfg domain.TemplateConfig, texts []string, userContext string) string {
	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a meme image using the %s template", name)

	var captions []string
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			captions = append(captions, fmt.Sprintf("%q", t))
		}
	}
	switch len(captions) {
	case 0:
	case 1:
		fmt.Fprintf(&b, " with text saying %s", captions[0])
	default:
		fmt.Fprintf(&b, " with text panels saying %s", strings.Join(captions, ", then "))
	}

	if c := strings.TrimSpace(userContext); c != "" {
		fmt.Fprintf(&b, ". Additional context: %s", c)
	}

	b.WriteString(". ")
	b.WriteString(styleHint)
	return b.String()
}
