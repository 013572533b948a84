package service

import (
	"strings"

	"nayose-service/internal/nayose/model"
)

// ApplyReview はステージ2: 目視確認済みワークブックの候補1を本列へ反映し、
// freeeインポート用の形へ落とす。
//  1. 取引先候補1 → 貸方取引先
//  2. 借方取引先が空なら貸方取引先からコピー
//  3. 同一伝票番号内で取引先を統一（複合仕訳対応）
//  4. 部門候補1 → 借方部門・貸方部門
//  5. 同一伝票番号内で部門を統一
//  6. 作業列（候補・_フラグ・STREAMED元）を削除
func ApplyReview(t model.Table) model.Table {
	partnerCand1 := model.PartnerCandCol(1)
	deptCand1 := model.DeptCandCol(1)

	hasCol := map[string]bool{}
	for _, h := range t.Headers {
		hasCol[h] = true
	}

	for _, row := range t.Rows {
		if hasCol[partnerCand1] && hasCol[model.ColCreditPartner] {
			if v := strings.TrimSpace(row[partnerCand1]); v != "" {
				row[model.ColCreditPartner] = v
			}
		}
		if hasCol[model.ColDebitPartner] && hasCol[model.ColCreditPartner] {
			if strings.TrimSpace(row[model.ColDebitPartner]) == "" {
				row[model.ColDebitPartner] = row[model.ColCreditPartner]
			}
		}
		if hasCol[deptCand1] {
			if v := strings.TrimSpace(row[deptCand1]); v != "" {
				if hasCol[model.ColDebitDept] {
					row[model.ColDebitDept] = v
				}
				if hasCol[model.ColCreditDept] {
					row[model.ColCreditDept] = v
				}
			}
		}
	}

	if hasCol[model.ColVoucherNo] {
		if hasCol[model.ColDebitPartner] && hasCol[model.ColCreditPartner] {
			// 取引先は貸方→借方の順で最初に見つかった値で統一
			unifyByVoucher(t.Rows, model.ColCreditPartner, model.ColDebitPartner,
				[]string{model.ColDebitPartner, model.ColCreditPartner})
		}
		if hasCol[model.ColDebitDept] && hasCol[model.ColCreditDept] {
			// 部門は借方→貸方の順
			unifyByVoucher(t.Rows, model.ColDebitDept, model.ColCreditDept,
				[]string{model.ColDebitDept, model.ColCreditDept})
		}
	}

	return dropWorkColumns(t)
}

// unifyByVoucher は伝票番号ごとに first/second 列を走査して最初の非空値を取り、
// 同グループ全行の target 列へ書き込む
func unifyByVoucher(rows []map[string]string, first, second string, targets []string) {
	groups := map[string][]map[string]string{}
	order := []string{}
	for _, row := range rows {
		v := row[model.ColVoucherNo]
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}
		groups[v] = append(groups[v], row)
	}

	for _, v := range order {
		group := groups[v]
		name := ""
		for _, row := range group {
			if s := strings.TrimSpace(row[first]); s != "" {
				name = s
				break
			}
			if s := strings.TrimSpace(row[second]); s != "" {
				name = s
				break
			}
		}
		if name == "" {
			continue
		}
		for _, row := range group {
			for _, col := range targets {
				row[col] = name
			}
		}
	}
}

// 作業列: 候補列・アンダースコア入り・STREAMED元
func isWorkColumn(name string) bool {
	return strings.Contains(name, "候補") ||
		strings.Contains(name, "_") ||
		strings.Contains(name, "STREAMED元")
}

func dropWorkColumns(t model.Table) model.Table {
	out := model.Table{Rows: t.Rows}
	dropped := []string{}
	for _, h := range t.Headers {
		if isWorkColumn(h) {
			dropped = append(dropped, h)
			continue
		}
		out.Headers = append(out.Headers, h)
	}
	for _, row := range out.Rows {
		for _, h := range dropped {
			delete(row, h)
		}
	}
	return out
}
