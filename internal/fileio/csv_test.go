package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const sampleCSV = "伝票番号,借方補助科目,貸方補助科目,借方金額\r\n" +
	"100,株式会社テスト商事,サンプル物産株式会社,12000\r\n" +
	"101,営業部経費精算,株式会社テスト商事,3400\r\n" +
	"102,サンプル物産株式会社,,560\r\n"

func toShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return b
}

func TestReadCSVShiftJIS(t *testing.T) {
	headers, rows, err := ReadAny(bytes.NewReader(toShiftJIS(t, sampleCSV)), "streamed.csv", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"伝票番号", "借方補助科目", "貸方補助科目", "借方金額"}, headers)
	require.Len(t, rows, 3)
	assert.Equal(t, "株式会社テスト商事", rows[0]["借方補助科目"])
	assert.Equal(t, "サンプル物産株式会社", rows[0]["貸方補助科目"])
	assert.Equal(t, "560", rows[2]["借方金額"])
}

func TestReadCSVUTF8BOM(t *testing.T) {
	headers, rows, err := ReadAny(strings.NewReader("\uFEFF"+sampleCSV), "journal.csv", 1)
	require.NoError(t, err)

	assert.Equal(t, "伝票番号", headers[0])
	require.Len(t, rows, 3)
	assert.Equal(t, "100", rows[0]["伝票番号"])
}

func TestReadAnyUnsupportedExtension(t *testing.T) {
	_, _, err := ReadAny(strings.NewReader("x"), "journal.txt", 1)
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	headers := []string{"伝票番号", "借方取引先", "借方金額"}
	rows := []map[string]string{
		{"伝票番号": "12081508001", "借方取引先": "サンプル物産株式会社", "借方金額": "12000"},
		{"伝票番号": "12081508002", "借方取引先": "株式会社テスト商事", "借方金額": "3400"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, headers, rows))

	// Shift_JIS で書かれていること（UTF-8のままではない）
	assert.NotContains(t, buf.String(), "伝票番号")

	gotHeaders, gotRows, err := ReadAny(bytes.NewReader(buf.Bytes()), "import.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, headers, gotHeaders)
	require.Len(t, gotRows, 2)
	assert.Equal(t, "サンプル物産株式会社", gotRows[0]["借方取引先"])
}
