// Package service はチェック実行（ステージ1）とレビュー適用（ステージ2）の本体。
// 照合そのものは internal/match に委譲し、ここは仕訳行とマスタの突き合わせだけを持つ。
package service

import (
	"strconv"
	"strings"
	"time"

	"nayose-service/internal/match"
	"nayose-service/internal/nayose/model"
)

// 補助科目列は取引先列へ改名して扱う（STREAMEDの旧形式対応）
var legacyRenames = map[string]string{
	model.ColDebitAuxOld:  model.ColDebitPartner,
	model.ColCreditAuxOld: model.ColCreditPartner,
}

// Check はステージ1を実行する。
//  1. 旧列名の改名、伝票番号の振り直し
//  2. 仕訳帳からマスタ抽出
//  3. 行ごとに取引先・部門を照合し、元値/候補/フラグ列を追加
//
// 設定不正（重み・TopN）だけがエラーになる。
func Check(journal model.Table, ledgers []model.Table, opt model.Options, now time.Time) (*model.CheckResult, error) {
	m, err := match.New(match.Config{
		NgramWeight:  opt.NgramWeight,
		PrefixWeight: opt.PrefixWeight,
		EditWeight:   opt.EditWeight,
		TopN:         opt.TopN,
	})
	if err != nil {
		return nil, err
	}

	renameLegacyColumns(&journal)
	RegenerateVouchers(journal, now)

	master := ExtractMaster(ledgers)

	res := &model.CheckResult{Master: master, Opts: opt}
	res.Stats.Rows = len(journal.Rows)

	partnerCols := appendMatchColumns(&journal, model.ColSourcePartner, model.PartnerCandCol,
		model.ColPartnerExact, model.ColPartnerBest, opt.TopN)
	deptCols := appendMatchColumns(&journal, model.ColSourceDept, model.DeptCandCol,
		model.ColDeptExact, model.ColDeptBest, opt.TopN)

	partnerSet := match.NewSet(master.Partners)
	deptSet := match.NewSet(master.Departments)

	for _, row := range journal.Rows {
		// 貸方優先で値を拾う（空でない方を使う）
		if len(master.Partners) > 0 {
			partner := pick(row[model.ColCreditPartner], row[model.ColDebitPartner])
			exact := matchOne(m, partner, partnerSet, row, partnerCols)
			if partner != "" {
				res.Stats.PartnerTotal++
				if exact {
					res.Stats.PartnerExact++
				}
			}
		}
		if len(master.Departments) > 0 {
			dept := pick(row[model.ColCreditDept], row[model.ColDebitDept])
			exact := matchOne(m, dept, deptSet, row, deptCols)
			if dept != "" {
				res.Stats.DeptTotal++
				if exact {
					res.Stats.DeptExact++
				}
			}
		}
	}

	res.Table = journal
	return res, nil
}

// matchColumns は1系統（取引先/部門）分の出力列名
type matchColumns struct {
	source     string
	candidates []string
	exact      string
	best       string
}

func appendMatchColumns(t *model.Table, source string, cand func(int) string, exact, best string, topN int) matchColumns {
	cols := matchColumns{source: source, exact: exact, best: best}
	t.Headers = append(t.Headers, source)
	for i := 1; i <= topN; i++ {
		c := cand(i)
		cols.candidates = append(cols.candidates, c)
		t.Headers = append(t.Headers, c)
	}
	t.Headers = append(t.Headers, exact, best)
	return cols
}

// matchOne は値1件をマスタと照合して行に書き込む。完全一致なら候補は出さない。
func matchOne(m *match.Matcher, value string, set *match.Set, row map[string]string, cols matchColumns) bool {
	row[cols.source] = ""
	for _, c := range cols.candidates {
		row[c] = ""
	}
	row[cols.exact] = ""
	row[cols.best] = ""

	if strings.TrimSpace(value) == "" || set.Len() == 0 {
		return false
	}
	row[cols.source] = value

	ranked := m.RankSet(value, set)
	if len(ranked) == 0 {
		row[cols.exact] = "false"
		return false
	}
	row[cols.best] = strconv.FormatFloat(ranked[0].Score, 'f', 4, 64)
	if ranked[0].Exact {
		row[cols.exact] = "true"
		return true
	}
	row[cols.exact] = "false"
	for i, r := range ranked {
		if i >= len(cols.candidates) {
			break
		}
		row[cols.candidates[i]] = r.Candidate
	}
	return false
}

func renameLegacyColumns(t *model.Table) {
	for i, h := range t.Headers {
		if nn, ok := legacyRenames[h]; ok {
			t.Headers[i] = nn
		}
	}
	for _, row := range t.Rows {
		for old, nn := range legacyRenames {
			if v, ok := row[old]; ok {
				if _, exists := row[nn]; !exists || row[nn] == "" {
					row[nn] = v
				}
				delete(row, old)
			}
		}
	}
}

// pick — 先頭の空でない値
func pick(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	if strings.TrimSpace(b) != "" {
		return b
	}
	return ""
}
