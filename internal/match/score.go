package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// サブスコアはどれも正規化済み文字列を前提とし、[0,1] を返す。
// 「両方空 ⇒ 1.0、片方だけ空 ⇒ 0.0」の規約を三指標で共通に適用する。

// bigramSet は重なりあり2文字窓の集合。2文字未満の文字列は
// 自分自身を唯一のグラムとして扱う（1文字名称同士でも一致が取れる）。
func bigramSet(s string) map[string]struct{} {
	r := []rune(s)
	m := make(map[string]struct{}, len(r))
	if len(r) == 0 {
		return m
	}
	if len(r) < 2 {
		m[s] = struct{}{}
		return m
	}
	for i := 0; i+2 <= len(r); i++ {
		m[string(r[i:i+2])] = struct{}{}
	}
	return m
}

// ngramScore — バイグラム集合のJaccard係数
func ngramScore(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	sa, sb := bigramSet(a), bigramSet(b)
	inter := 0
	for g := range sa {
		if _, ok := sb[g]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// prefixScore — 先頭からの一致文字数 / 短い方の長さ
func prefixScore(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	k := 0
	for k < n && ra[k] == rb[k] {
		k++
	}
	return float64(k) / float64(n)
}

// editScore — 1 - レーベンシュタイン距離/長い方の長さ
func editScore(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(maxLen)
}

// Breakdown は1ペア分のスコア内訳。Score は重み付き合成値。
type Breakdown struct {
	Score  float64 `json:"score"`
	Ngram  float64 `json:"ngramScore"`
	Prefix float64 `json:"prefixScore"`
	Edit   float64 `json:"editScore"`
	Exact  bool    `json:"exact"`
}

// scoreNorm は正規化済みペアの合成スコア。正準形が等しければ
// 内訳ごと 1.0 に短絡する（完全一致）。重み和で割るので、
// 和が1でない重み設定でも値域は [0,1] に収まる。
func (c Config) scoreNorm(na, nb string) Breakdown {
	if na == nb {
		return Breakdown{Score: 1, Ngram: 1, Prefix: 1, Edit: 1, Exact: true}
	}
	br := Breakdown{
		Ngram:  ngramScore(na, nb),
		Prefix: prefixScore(na, nb),
		Edit:   editScore(na, nb),
	}
	sum := c.NgramWeight + c.PrefixWeight + c.EditWeight
	br.Score = (c.NgramWeight*br.Ngram + c.PrefixWeight*br.Prefix + c.EditWeight*br.Edit) / sum
	return br
}
