package service

import (
	"fmt"
	"time"

	"nayose-service/internal/nayose/model"
)

// RegenerateVouchers は伝票番号を「月日時分＋連番3桁」へ振り直す。
// 複合仕訳対応: 元の伝票番号が同じ行には同じ新番号を振る。
// 連番は元番号の初出順。now は呼び出し側が渡す（テスト可能性のため中では読まない）。
// 伝票番号列を持たない表には何もしない（勝手に列を作らない）。
func RegenerateVouchers(t model.Table, now time.Time) {
	if !hasHeader(t, model.ColVoucherNo) {
		return
	}
	prefix := now.Format("01021504") // MMDDHHMM

	assigned := map[string]string{}
	seq := 0
	for _, row := range t.Rows {
		old := row[model.ColVoucherNo]
		nv, ok := assigned[old]
		if !ok {
			seq++
			nv = fmt.Sprintf("%s%03d", prefix, seq)
			assigned[old] = nv
		}
		row[model.ColVoucherNo] = nv
	}
}

func hasHeader(t model.Table, name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
