package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nayose-service/internal/nayose/model"
)

func checkedTable() model.Table {
	return model.Table{
		Headers: []string{
			model.ColVoucherNo, model.ColCreditPartner, "借方金額",
			model.ColSourcePartner, model.PartnerCandCol(1),
			model.ColPartnerExact, model.ColPartnerBest,
		},
		Rows: []map[string]string{
			{
				model.ColVoucherNo: "12081508001", model.ColCreditPartner: "サンプル商事",
				"借方金額":                "12,000",
				model.ColSourcePartner: "サンプル商事", model.PartnerCandCol(1): "",
				model.ColPartnerExact: "true", model.ColPartnerBest: "1.0000",
			},
			{
				model.ColVoucherNo: "12081508002", model.ColCreditPartner: "不明商店",
				"借方金額":                "3400",
				model.ColSourcePartner: "不明商店", model.PartnerCandCol(1): "テスト工業",
				model.ColPartnerExact: "false", model.ColPartnerBest: "0.3100",
			},
		},
	}
}

func TestWriteCheckWorkbook(t *testing.T) {
	f, err := WriteCheckWorkbook(checkedTable(), 0.8)
	require.NoError(t, err)
	defer f.Close()

	// データシート + 使い方シート
	assert.Equal(t, dataSheet, f.GetSheetName(0))
	idx, err := f.GetSheetIndex(helpSheet)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 1)

	// 値が入っていること
	v, err := f.GetCellValue(dataSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, model.ColVoucherNo, v)
	v, err = f.GetCellValue(dataSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "12081508001", v)

	// 金額列は数値として書かれ、桁区切り書式が付く
	v, err = f.GetCellValue(dataSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "12,000", v)

	// フラグ列は非表示
	visible, err := f.GetColVisible(dataSheet, "F")
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = f.GetColVisible(dataSheet, "B")
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestWriteExportWorkbook(t *testing.T) {
	before := checkedTable()
	after := model.Table{
		Headers: []string{model.ColVoucherNo, model.ColCreditPartner},
		Rows: []map[string]string{
			{model.ColVoucherNo: "12081508001", model.ColCreditPartner: "サンプル商事株式会社"},
		},
	}

	f, err := WriteExportWorkbook(before, after)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, beforeSheet, f.GetSheetName(0))
	idx, err := f.GetSheetIndex(afterSheet)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 1)

	v, err := f.GetCellValue(afterSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "サンプル商事株式会社", v)
}

func TestMatchRowColor(t *testing.T) {
	exact := map[string]string{
		model.ColSourcePartner: "あ", model.ColPartnerExact: "true", model.ColPartnerBest: "1.0000",
	}
	viable := map[string]string{
		model.ColSourcePartner: "あ", model.ColPartnerExact: "false", model.ColPartnerBest: "0.8500",
	}
	low := map[string]string{
		model.ColSourcePartner: "あ", model.ColPartnerExact: "false", model.ColPartnerBest: "0.3000",
	}
	none := map[string]string{}

	assert.Equal(t, colorGreen, matchRowColor(exact, 0.8))
	assert.Equal(t, "", matchRowColor(viable, 0.8))
	assert.Equal(t, colorRed, matchRowColor(low, 0.8))
	assert.Equal(t, "", matchRowColor(none, 0.8))
}
