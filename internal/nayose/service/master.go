package service

import (
	"sort"
	"strings"

	"nayose-service/internal/nayose/model"
)

// ExtractMaster は freee 仕訳帳の行集合から取引先・部門の正名称を重複なしで集める。
// 借方/貸方の両列を見る。結果は決定的になるよう昇順ソート。
func ExtractMaster(ledgers []model.Table) model.Master {
	partners := map[string]struct{}{}
	departments := map[string]struct{}{}

	for _, t := range ledgers {
		for _, row := range t.Rows {
			for _, key := range []string{model.ColLedgerDebitPartner, model.ColLedgerCreditPartner} {
				if v := strings.TrimSpace(row[key]); v != "" {
					partners[v] = struct{}{}
				}
			}
			for _, key := range []string{model.ColDebitDept, model.ColCreditDept} {
				if v := strings.TrimSpace(row[key]); v != "" {
					departments[v] = struct{}{}
				}
			}
		}
	}

	return model.Master{
		Partners:    sortedKeys(partners),
		Departments: sortedKeys(departments),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
