// Package excel はレビュー用ワークブックの組み立て。
// 色分け・列幅・非表示列のルールは従来ツールのExcel出力と互換。
package excel

import (
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"nayose-service/internal/nayose/model"
)

// 色定義
const (
	colorGreen        = "C6EFCE" // 完全一致（行）
	colorRed          = "FFC7CE" // 候補なし・低スコア（行）
	colorYellow       = "FFEB9C" // 取引先候補1
	colorYellowLight  = "FFF9E6" // 取引先元・候補2以降
	colorBlue         = "DDEBF7" // 部門候補1
	colorBlueLight    = "F0F6FC" // 部門元・候補2以降
	colorHeaderSource = "E2EFDA" // STREAMED由来列のヘッダー
	colorHeaderSystem = "FCE4D6" // システム追加列のヘッダー
	colorHeaderGray   = "D9D9D9" // フラグ列のヘッダー
	colorModified     = "E7E6F7" // ステージ2で生成し直した列
	colorSystemAdded  = "DEEBF7" // ステージ2で候補からコピーした列
)

const (
	dataSheet   = "Sheet1"
	beforeSheet = "編集前"
	afterSheet  = "編集後（freeeインポート用）"
	helpSheet   = "使い方"

	rowHeight = 22.5 // 既定15の1.5倍
)

// book は1ワークブック分のスタイルキャッシュ持ちラッパー
type book struct {
	f      *excelize.File
	styles map[string]int
}

func newBook() *book {
	return &book{f: excelize.NewFile(), styles: map[string]int{}}
}

// style はフル装飾（罫線+縦中央）のスタイルIDを合成キーで使い回す
func (b *book) style(fill string, amount, bold bool) (int, error) {
	key := fill + "|" + strconv.FormatBool(amount) + "|" + strconv.FormatBool(bold)
	if id, ok := b.styles[key]; ok {
		return id, nil
	}
	st := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}
	if fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}
	if amount {
		st.Alignment.Horizontal = "right"
		numFmt := "#,##0"
		st.CustomNumFmt = &numFmt
	}
	if bold {
		st.Font = &excelize.Font{Bold: true}
	}
	id, err := b.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	b.styles[key] = id
	return id, nil
}

// WriteCheckWorkbook はステージ1のチェック結果ワークブックを作る。
// 行の色: 完全一致=緑、ベストスコアが minScore 未満（候補なし含む）=赤。
// 取引先系は部門系より優先（従来互換）。
func WriteCheckWorkbook(t model.Table, minScore float64) (*excelize.File, error) {
	b := newBook()
	if err := b.writeSheet(dataSheet, t, stage1HeaderColor, true, minScore); err != nil {
		return nil, err
	}
	if err := b.writeHelpSheet(); err != nil {
		return nil, err
	}
	return b.f, nil
}

// WriteExportWorkbook はステージ2の2シート構成（編集前/編集後）を作る
func WriteExportWorkbook(before, after model.Table) (*excelize.File, error) {
	b := newBook()
	if err := b.f.SetSheetName(dataSheet, beforeSheet); err != nil {
		return nil, err
	}
	if err := b.writeSheet(beforeSheet, before, stage1HeaderColor, false, 0); err != nil {
		return nil, err
	}
	if _, err := b.f.NewSheet(afterSheet); err != nil {
		return nil, err
	}
	if err := b.writeSheet(afterSheet, after, stage2HeaderColor, false, 0); err != nil {
		return nil, err
	}
	return b.f, nil
}

// writeSheet はヘッダー+データ+装飾を1シート分書く。
// colorRows が真のときだけ行の一致色と候補列色を塗る。
func (b *book) writeSheet(sheet string, t model.Table, headerColor func(string) string, colorRows bool, minScore float64) error {
	// ヘッダー行
	for c, name := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		st, err := b.style(headerColor(name), false, true)
		if err != nil {
			return err
		}
		if err := b.f.SetCellStyle(sheet, cell, cell, st); err != nil {
			return err
		}
	}

	// データ行
	for r, row := range t.Rows {
		rowFill := ""
		if colorRows {
			rowFill = matchRowColor(row, minScore)
		}
		for c, name := range t.Headers {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			v := row[name]
			amount := strings.Contains(name, "金額")
			if amount {
				if f, ok := parseAmount(v); ok {
					if err := b.f.SetCellValue(sheet, cell, f); err != nil {
						return err
					}
				} else if err := b.f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			} else if err := b.f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}

			fill := ""
			if colorRows {
				fill = cellFill(name, rowFill)
			}
			st, err := b.style(fill, amount, false)
			if err != nil {
				return err
			}
			if err := b.f.SetCellStyle(sheet, cell, cell, st); err != nil {
				return err
			}
		}
	}

	// 行高（ヘッダー含む）
	for r := 1; r <= len(t.Rows)+1; r++ {
		if err := b.f.SetRowHeight(sheet, r, rowHeight); err != nil {
			return err
		}
	}

	// 列幅の自動調整とフラグ列の非表示
	for c, name := range t.Headers {
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		w := displayWidth(name)
		for _, row := range t.Rows {
			if cw := displayWidth(row[name]); cw > w {
				w = cw
			}
		}
		width := min(max(float64(w+2), 10), 60)
		if err := b.f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
		if strings.HasPrefix(name, "_") {
			if err := b.f.SetColVisible(sheet, colName, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchRowColor は一致状態から行の塗り色を決める。取引先優先。
func matchRowColor(row map[string]string, minScore float64) string {
	if c := matchColor(row, model.ColSourcePartner, model.ColPartnerExact, model.ColPartnerBest, minScore); c != "" {
		return c
	}
	return matchColor(row, model.ColSourceDept, model.ColDeptExact, model.ColDeptBest, minScore)
}

func matchColor(row map[string]string, source, exact, best string, minScore float64) string {
	if strings.TrimSpace(row[source]) == "" {
		return ""
	}
	if row[exact] == "true" {
		return colorGreen
	}
	if s, err := strconv.ParseFloat(row[best], 64); err == nil && s >= minScore {
		// 有望な候補あり → 色は付けず候補列の色に任せる
		return ""
	}
	return colorRed
}

// cellFill はセル単位の塗り。候補・元値列は列色が行色に勝つ。
func cellFill(name, rowFill string) string {
	switch {
	case name == model.ColSourcePartner:
		return colorYellowLight
	case name == model.PartnerCandCol(1):
		return colorYellow
	case strings.HasPrefix(name, "freee取引先名候補"):
		return colorYellowLight
	case name == model.ColSourceDept:
		return colorBlueLight
	case name == model.DeptCandCol(1):
		return colorBlue
	case strings.HasPrefix(name, "freee部門候補"):
		return colorBlueLight
	case strings.HasPrefix(name, "_"):
		return ""
	default:
		return rowFill
	}
}

func stage1HeaderColor(name string) string {
	switch {
	case name == model.ColSourcePartner || name == model.ColSourceDept,
		strings.Contains(name, "候補"):
		return colorHeaderSystem
	case strings.HasPrefix(name, "_"):
		return colorHeaderGray
	default:
		return colorHeaderSource
	}
}

func stage2HeaderColor(name string) string {
	switch name {
	case model.ColVoucherNo:
		return colorModified
	case model.ColDebitPartner, model.ColCreditPartner, model.ColDebitDept, model.ColCreditDept:
		return colorSystemAdded
	default:
		return colorHeaderSource
	}
}

// displayWidth は全角を2、半角を1として数える（Excelの列幅近似）
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

// parseAmount は "12,000" や全角混じりの数値文字列をfloatへ
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer(",", "", " ", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
