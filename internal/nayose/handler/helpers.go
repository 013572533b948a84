package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	excelize "github.com/xuri/excelize/v2"

	"nayose-service/internal/config"
	"nayose-service/internal/fileio"
	"nayose-service/internal/middleware"
	"nayose-service/internal/nayose/model"
)

// optionsFromForm は既定値にフォーム値を上書きして照合オプションを作る。
// 値の正当性チェックは matcher 側に任せる（黙って補正しない）。
func optionsFromForm(r *http.Request, cfg config.Config) model.Options {
	opt := model.Defaults()
	opt.MinScore = cfg.MinScore
	opt.NgramWeight = toFloat(r.FormValue("ngram_weight"), opt.NgramWeight)
	opt.PrefixWeight = toFloat(r.FormValue("prefix_weight"), opt.PrefixWeight)
	opt.EditWeight = toFloat(r.FormValue("edit_weight"), opt.EditWeight)
	opt.TopN = atoi(r.FormValue("top_n"), opt.TopN)
	opt.MinScore = toFloat(r.FormValue("min_score"), opt.MinScore)
	return opt
}

// readFormTable はmultipartの1ファイルフィールドを表として読む
func readFormTable(r *http.Request, field string) (model.Table, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return model.Table{}, err
	}
	defer f.Close()
	headers, rows, err := fileio.ReadAny(f, fh.Filename, atoi(r.FormValue(field+"_header_row"), 1))
	if err != nil {
		return model.Table{}, err
	}
	return model.Table{Headers: headers, Rows: rows}, nil
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeWorkbook(w http.ResponseWriter, f *excelize.File, filename string, log zerolog.Logger) {
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := f.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("write workbook")
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
