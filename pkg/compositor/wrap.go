package compositor

import (
	"strings"
	"unicode"
)

// LineHeightFactor は文字サイズに対する行送りの倍率です。
const LineHeightFactor = 1.1

// WrapText は text を単語単位で貪欲に折り返します。
// 行の幅が maxWidth を超えない限り単語を足していき、超える単語で改行します。
// 行頭の単語は maxWidth を超えていても改行せずにそのまま残します。
// 行内の単語間の空白は入力のまま保ち、改行位置の空白だけを取り除きます。
// 最後の行は常に出力されるので、戻り値は必ず1行以上です。
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)

	spans := wordSpans(text)
	if len(spans) == 0 {
		return []string{""}
	}

	var lines []string
	start, end := spans[0][0], spans[0][1]
	for _, sp := range spans[1:] {
		if measure(text[start:sp[1]]) > maxWidth {
			lines = append(lines, text[start:end])
			start = sp[0]
		}
		end = sp[1]
	}
	return append(lines, text[start:end])
}

// wordSpans は空白で区切られた各単語の [開始, 終了) バイト位置を返します。
func wordSpans(text string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range text {
		switch {
		case r == ' ' && start >= 0:
			spans = append(spans, [2]int{start, i})
			start = -1
		case r != ' ' && start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}
