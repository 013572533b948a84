package excel

import (
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// レビュー手順の説明（ワークブック末尾の「使い方」シート）
var helpLines = []string{
	"STREAMED→freee会計インポート用CSV修正 使い方",
	"",
	"■ このファイルの確認方法",
	"",
	"1. 行の色分け",
	"　緑色の行　→　freeeと取引先名/部門名が完全一致しています。チェック不要です。",
	"　赤色の行　→　freeeに該当する取引先名/部門名が見つかりませんでした。必ず確認してください。",
	"",
	"2. 列の色分け",
	"　黄色の列　→　freee取引先名候補（濃い黄色が候補1、薄い黄色が候補2以降とSTREAMED元）",
	"　青色の列　→　freee部門候補（濃い青色が候補1、薄い青色が候補2以降とSTREAMED元）",
	"",
	"3. 候補の選択方法",
	"　①「freee取引先名候補1」「freee部門候補1」の列を確認",
	"　②正しい候補が表示されていれば、そのままにする",
	"　③候補2以降が正しい場合は、候補1の列にコピー&ペースト",
	"　④候補がすべて間違っている場合は、手動で正しい名称を候補1に入力",
	"",
	"■ エクスポートでの処理",
	"",
	"このExcelファイルを確認・修正後、エクスポートにアップロードすると：",
	"",
	"1. 「freee取引先名候補1」に値が入っている場合のみ、「貸方取引先」「借方取引先」に自動コピーされます",
	"2. 「freee部門候補1」に値が入っている場合のみ、「借方部門」「貸方部門」に自動コピーされます",
	"3. 複合仕訳の場合、同じ伝票番号内で取引先名と部門が統一されます",
	"4. freeeインポート用CSVが生成されます",
	"",
	"■ 注意事項",
	"",
	"・赤色の行は必ず内容を確認し、正しい取引先名/部門名を入力してください",
	"・緑色の行は確認不要ですが、念のため目視確認を推奨します",
	"・候補1に文字が入っている行のみ、エクスポートで自動的にコピーされます",
	"・候補1が空欄の行は、エクスポートでそのまま（空欄のまま）になります",
}

func (b *book) writeHelpSheet() error {
	if _, err := b.f.NewSheet(helpSheet); err != nil {
		return err
	}

	titleStyle, err := b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headingStyle, err := b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	boldStyle, err := b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	plainStyle, err := b.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}

	for i, line := range helpLines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(helpSheet, cell, line); err != nil {
			return err
		}
		st := plainStyle
		switch {
		case i == 0:
			st = titleStyle
		case strings.HasPrefix(line, "■"):
			st = headingStyle
		case strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") ||
			strings.HasPrefix(line, "3.") || strings.HasPrefix(line, "4."):
			st = boldStyle
		}
		if err := b.f.SetCellStyle(helpSheet, cell, cell, st); err != nil {
			return err
		}
		if err := b.f.SetRowHeight(helpSheet, i+1, 20); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(helpSheet, "A", "A", 100)
}
