// Package fileio はアップロードされた表形式ファイルを
// ヘッダー付きの行集合（[]map[ヘッダー]値）へ読み込む。
package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadAny は拡張子でパーサーを選び、（ヘッダー列, 行）を返す。
// headerRow はヘッダー行番号（1始まり）。
func ReadAny(r io.Reader, filename string, headerRow int) ([]string, []map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// pickHeader はヘッダー行を取り、空のヘッダーには Column N を埋める
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps はAoAをヘッダーキーのmap列へ。完全に空の行は捨てる。
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow // ヘッダーの次の行から
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := map[string]string{}
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			m[headers[c]] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell — 前後トリムとNBSP類の置換だけ。値そのものは変えない
func normalizeCell(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ': // NBSP / thin space / NNBSP
			return ' '
		default:
			return r
		}
	}, s)
	return strings.TrimSpace(s)
}
