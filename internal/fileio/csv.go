package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV はエンコーディングを自動判定してUTF-8へ変換しながら読む。
// STREAMED / freee のエクスポートはほぼ CP932 だが、UTF-8（BOM付き含む）も通す。
func readCSV(r io.Reader, headerRow int) ([]string, []map[string]string, error) {
	br := bufio.NewReader(r)

	// 先頭だけ覗いて判定
	peek, _ := br.Peek(4096)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader
	switch cs {
	case "shift_jis", "shift-jis", "windows-31j", "cp932", "ibm-943":
		dec = transform.NewReader(br, japanese.ShiftJIS.NewDecoder())
	case "euc-jp":
		dec = transform.NewReader(br, japanese.EUCJP.NewDecoder())
	case "iso-2022-jp":
		dec = transform.NewReader(br, japanese.ISO2022JP.NewDecoder())
	default:
		// UTF-8とみなす。BOMは剥がす
		dec = transform.NewReader(br, unicode.UTF8BOM.NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	h := pickHeader(rows, headerRow)
	return h, rowsToMaps(rows, h, headerRow), nil
}
