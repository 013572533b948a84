package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// 法人格トークン。ステージ1〜4（NFKC・幅寄せ・かな統一・小文字化）の後に
// 適用するので、全角表記・大文字表記はここに並べる必要がない。
// 例: ㈱ と （株） は NFKC で (株) に畳まれる。
// 新しい表記ゆれはこのテーブルに足すだけでよい。
var legalFormPatterns = []string{
	`株式会社`,
	`\(株\)`,
	`有限会社`,
	`\(有\)`,
	`合名会社`,
	`合資会社`,
	`合同会社`,
	`\bco\.\s*,?\s*ltd\b\.?`,
	`\bllc\b`,
	`\bholdings?\b`,
	`\bhd\b`,
	`\bcorporation\b`,
	`\bcorp\b\.?`,
	`\binc\b\.?`,
	`\blimited\b`,
	`\bltd\b\.?`,
}

var reLegalForm = regexp.MustCompile(strings.Join(legalFormPatterns, "|"))

// 除去する区切り・ノイズ記号。スペースは代入しない（除去のみ）。
// 長音「ー」は意味を持つので消さない。
// 幅寄せ前の全角形も保険で入れてある（テーブルは設定データ扱い）。
var stripSymbols = map[rune]struct{}{
	'×': {}, '・': {},
	'/': {}, '／': {},
	'-': {}, '‐': {}, '‑': {}, '–': {}, '—': {}, '−': {},
	'.': {}, ',': {},
	'(': {}, ')': {}, '（': {}, '）': {},
}

// ステージ1〜2: NFKC互換正規化 + 全角英数→半角（半角カナは全角へ寄る）
var widthFold = transform.Chain(norm.NFKC, width.Fold)

// Normalize は生の名称を比較用の正準形へ写す。
// パイプライン（順序に依存あり）:
//  1. Unicode NFKC 正規化
//  2. 全角英数記号 → 半角
//  3. カタカナ → ひらがな
//  4. 大文字 → 小文字
//  5. 法人格の除去（除去跡の二重スペースは畳む）
//  6. 記号除去 + 前後トリム + 空白ランを単一スペースへ
//
// 入力が空、または除去対象だけで構成される場合は空文字を返す。冪等。
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(widthFold, s)
	if err != nil {
		// 変換不能バイトが混ざっていても落とさず元文字列で続行
		out = s
	}
	out = kataToHira(out)
	out = strings.ToLower(out)
	out = collapseSpaces(reLegalForm.ReplaceAllString(out, " "))
	out = stripNoise(out)
	return out
}

// カタカナ（ァ..ヶ）を同位のひらがなへ。ー・は音引き/中点なので対象外。
func kataToHira(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 0x60
		}
		b = append(b, r)
	}
	return string(b)
}

// stripSymbols にある記号をスペース代入なしで落とし、空白を整える
func stripNoise(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if _, ok := stripSymbols[r]; ok {
			continue
		}
		b = append(b, r)
	}
	return collapseSpaces(string(b))
}

// 空白ランを単一スペースに畳み、前後をトリム
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
