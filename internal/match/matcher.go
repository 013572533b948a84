// Package match は名称の表記ゆれ照合コア。
// 正規化（Normalize）と重み付き類似度ランキング（Matcher.Rank）だけを提供し、
// 状態・入出力を一切持たない。複数ゴルーチンから同時に呼んでよい。
package match

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBadConfig — 重み・TopN の設定不正。黙って補正はしない。
var ErrBadConfig = errors.New("match: bad config")

// Config は照合の重みと返す候補数。値で渡す（プロセス全体の可変状態にしない）。
type Config struct {
	NgramWeight  float64 `json:"ngramWeight"`
	PrefixWeight float64 `json:"prefixWeight"`
	EditWeight   float64 `json:"editWeight"`
	TopN         int     `json:"topN"`
}

// DefaultConfig — 実運用で調整済みの既定値
func DefaultConfig() Config {
	return Config{NgramWeight: 0.5, PrefixWeight: 0.3, EditWeight: 0.2, TopN: 3}
}

func (c Config) validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("%w: topN must be >= 1, got %d", ErrBadConfig, c.TopN)
	}
	if c.NgramWeight < 0 || c.PrefixWeight < 0 || c.EditWeight < 0 {
		return fmt.Errorf("%w: weights must be non-negative (%v, %v, %v)",
			ErrBadConfig, c.NgramWeight, c.PrefixWeight, c.EditWeight)
	}
	if c.NgramWeight+c.PrefixWeight+c.EditWeight <= 0 {
		return fmt.Errorf("%w: weights must sum to a positive value", ErrBadConfig)
	}
	return nil
}

// Matcher は検証済み Config を持つだけの純関数の束
type Matcher struct {
	cfg Config
}

// New は Config を検証して Matcher を返す。文字列入力で失敗することはなく、
// エラーになり得るのは設定不正だけ。
func New(cfg Config) (*Matcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Matcher{cfg: cfg}, nil
}

// Result はクエリ1件に対する候補1件の評価
type Result struct {
	Candidate string  `json:"candidate"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
	Exact     bool    `json:"exact"`
}

// Set は候補集合（原文と正準形のペア列）。リクエストごとに作り直す。
type Set struct {
	raw  []string
	norm []string
}

// NewSet は候補列を一度だけ正規化して保持する
func NewSet(candidates []string) *Set {
	s := &Set{
		raw:  make([]string, len(candidates)),
		norm: make([]string, len(candidates)),
	}
	for i, c := range candidates {
		s.raw[i] = c
		s.norm[i] = Normalize(c)
	}
	return s
}

// Len は候補数
func (s *Set) Len() int { return len(s.raw) }

// Score は生文字列ペアの内訳付きスコア（正規化は内部で行う）
func (m *Matcher) Score(query, candidate string) Breakdown {
	return m.cfg.scoreNorm(Normalize(query), Normalize(candidate))
}

// Rank はクエリを候補列に対して採点し、スコア降順・同点は元順で上位 TopN を返す。
// しきい値判定は呼び出し側の責務（Matcher はスコアを報告するだけ）。
func (m *Matcher) Rank(query string, candidates []string) []Result {
	return m.RankSet(query, NewSet(candidates))
}

// RankSet は正規化済み Set 版。同一 Set を複数クエリで使い回すときはこちら。
func (m *Matcher) RankSet(query string, set *Set) []Result {
	nq := Normalize(query)
	out := make([]Result, 0, set.Len())
	for i := range set.raw {
		br := m.cfg.scoreNorm(nq, set.norm[i])
		out = append(out, Result{Candidate: set.raw[i], Score: br.Score, Exact: br.Exact})
	}
	// 同点は CandidateSet の元順を保つ（安定ソート）
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > m.cfg.TopN {
		out = out[:m.cfg.TopN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
