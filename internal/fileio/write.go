package fileio

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// WriteCSV は freee インポート用CSVを Shift_JIS (CP932) で書き出す。
// Excel と freee の両方でそのまま開ける。CP932に無い文字は置換文字へ落とす。
func WriteCSV(w io.Writer, headers []string, rows []map[string]string) error {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder()))
	cw := csv.NewWriter(enc)

	if err := cw.Write(headers); err != nil {
		return err
	}
	rec := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			rec[i] = row[h]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return enc.Close()
}
