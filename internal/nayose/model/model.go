package model

import "fmt"

// 列名は STREAMED / freee のエクスポート仕様そのまま
const (
	ColVoucherNo = "伝票番号"

	// STREAMED 側（借方/貸方の補助科目は取引先へ改名して扱う）
	ColDebitAuxOld  = "借方補助科目"
	ColCreditAuxOld = "貸方補助科目"
	ColDebitPartner = "借方取引先"
	ColCreditPartner = "貸方取引先"
	ColDebitDept    = "借方部門"
	ColCreditDept   = "貸方部門"

	// freee 仕訳帳側（マスタ抽出に使う）
	ColLedgerDebitPartner  = "借方取引先名"
	ColLedgerCreditPartner = "貸方取引先名"

	// チェック実行で追加する列
	ColSourcePartner = "STREAMED元の取引先"
	ColSourceDept    = "STREAMED元の部門"

	// フラグ列（_始まりはExcelで非表示、エクスポートで削除）
	ColPartnerExact = "_取引先完全一致"
	ColDeptExact    = "_部門完全一致"
	ColPartnerBest  = "_取引先最高スコア"
	ColDeptBest     = "_部門最高スコア"
)

// PartnerCandCol は取引先候補列名（1始まり）
func PartnerCandCol(i int) string { return fmt.Sprintf("freee取引先名候補%d", i) }

// DeptCandCol は部門候補列名（1始まり）
func DeptCandCol(i int) string { return fmt.Sprintf("freee部門候補%d", i) }

// Options はチェック1回分の照合設定。ゼロ値は使わず Defaults() を起点にする。
type Options struct {
	NgramWeight  float64 `json:"ngramWeight"`
	PrefixWeight float64 `json:"prefixWeight"`
	EditWeight   float64 `json:"editWeight"`
	TopN         int     `json:"topN"`
	MinScore     float64 `json:"minScore"` // 色分けで「候補あり」とみなす下限
}

// Defaults — 元ツールの既定値
func Defaults() Options {
	return Options{NgramWeight: 0.5, PrefixWeight: 0.3, EditWeight: 0.2, TopN: 3, MinScore: 0.8}
}

// Table はヘッダー順を保持した行集合。fileio が読み、excel が書く。
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Clone は行マップまで複製した深いコピー（適用前後の比較用）
func (t Table) Clone() Table {
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([]map[string]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		m := make(map[string]string, len(row))
		for k, v := range row {
			m[k] = v
		}
		out.Rows[i] = m
	}
	return out
}

// Master は freee 仕訳帳から抽出した正名称の全集合
type Master struct {
	Partners    []string `json:"partners"`
	Departments []string `json:"departments"`
}

// Stats はチェック結果の集計
type Stats struct {
	Rows         int `json:"rows"`
	PartnerTotal int `json:"partnerTotal"`
	PartnerExact int `json:"partnerExact"`
	DeptTotal    int `json:"deptTotal"`
	DeptExact    int `json:"deptExact"`
}

// CheckResult はステージ1（初回チェック）の出力
type CheckResult struct {
	Table  Table   `json:"-"`
	Master Master  `json:"master"`
	Stats  Stats   `json:"stats"`
	Opts   Options `json:"opts"`
}
