package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"nayose-service/internal/config"
	"nayose-service/internal/excel"
	"nayose-service/internal/fileio"
	"nayose-service/internal/match"
	"nayose-service/internal/nayose/model"
	"nayose-service/internal/nayose/service"
)

// Match は照合コアの直接公開: クエリ1件を候補列に対して採点して返す。
// POST /match, JSON in/out。
func Match(logger zerolog.Logger) http.HandlerFunc {
	type request struct {
		Query        string   `json:"query"`
		Candidates   []string `json:"candidates"`
		NgramWeight  *float64 `json:"ngramWeight"`
		PrefixWeight *float64 `json:"prefixWeight"`
		EditWeight   *float64 `json:"editWeight"`
		TopN         *int     `json:"topN"`
	}
	type response struct {
		Query      string         `json:"query"`
		Normalized string         `json:"normalized"`
		Results    []match.Result `json:"results"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		cfg := match.DefaultConfig()
		if req.NgramWeight != nil {
			cfg.NgramWeight = *req.NgramWeight
		}
		if req.PrefixWeight != nil {
			cfg.PrefixWeight = *req.PrefixWeight
		}
		if req.EditWeight != nil {
			cfg.EditWeight = *req.EditWeight
		}
		if req.TopN != nil {
			cfg.TopN = *req.TopN
		}

		m, err := match.New(cfg)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, response{
			Query:      req.Query,
			Normalized: match.Normalize(req.Query),
			Results:    m.Rank(req.Query, req.Candidates),
		})
	}
}

// Check はステージ1: STREAMED CSV + freee仕訳帳CSV（複数可）を受けて
// 表記ゆれチェック結果を返す。format=xlsx でレビュー用ワークブックを落とす。
func Check(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	type response struct {
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
		Master  model.Master        `json:"master"`
		Stats   model.Stats         `json:"stats"`
		Opts    model.Options       `json:"opts"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(64 << 20); err != nil {
			httpError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		journal, err := readFormTable(r, "streamed")
		if err != nil {
			httpError(w, http.StatusBadRequest, "failed to read streamed csv: "+err.Error())
			return
		}

		ledgerHeaders := r.MultipartForm.File["ledger"]
		if len(ledgerHeaders) == 0 {
			httpError(w, http.StatusBadRequest, "missing ledger files")
			return
		}
		ledgers := make([]model.Table, 0, len(ledgerHeaders))
		for _, fh := range ledgerHeaders {
			f, err := fh.Open()
			if err != nil {
				httpError(w, http.StatusBadRequest, "failed to open ledger: "+err.Error())
				return
			}
			headers, rows, err := fileio.ReadAny(f, fh.Filename, 1)
			f.Close()
			if err != nil {
				httpError(w, http.StatusBadRequest, "failed to read ledger: "+err.Error())
				return
			}
			ledgers = append(ledgers, model.Table{Headers: headers, Rows: rows})
		}

		opt := optionsFromForm(r, cfg)
		res, err := service.Check(journal, ledgers, opt, time.Now())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, match.ErrBadConfig) {
				status = http.StatusBadRequest
			}
			httpError(w, status, err.Error())
			return
		}

		if r.FormValue("format") == "xlsx" {
			f, err := excel.WriteCheckWorkbook(res.Table, opt.MinScore)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "failed to build workbook: "+err.Error())
				return
			}
			defer f.Close()
			name := fmt.Sprintf("freee_import_check_%s.xlsx", time.Now().Format("20060102_150405"))
			writeWorkbook(w, f, name, log)
		} else {
			writeJSON(w, response{
				Columns: res.Table.Headers,
				Rows:    res.Table.Rows,
				Master:  res.Master,
				Stats:   res.Stats,
				Opts:    res.Opts,
			})
		}

		log.Info().
			Int("journal_rows", res.Stats.Rows).
			Int("partners", len(res.Master.Partners)).
			Int("departments", len(res.Master.Departments)).
			Int("partner_exact", res.Stats.PartnerExact).
			Int("dept_exact", res.Stats.DeptExact).
			Dur("elapsed", time.Since(start)).
			Msg("check done")
	}
}

// Export はステージ2: 目視確認済みワークブックを受けて候補1を反映し、
// freeeインポート用CSV（既定）か2シート構成のワークブック（format=xlsx）を返す。
func Export(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(64 << 20); err != nil {
			httpError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		before, err := readFormTable(r, "reviewed")
		if err != nil {
			httpError(w, http.StatusBadRequest, "failed to read reviewed file: "+err.Error())
			return
		}

		after := service.ApplyReview(before.Clone())
		stamp := time.Now().Format("20060102_150405")

		if r.FormValue("format") == "xlsx" {
			f, err := excel.WriteExportWorkbook(before, after)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "failed to build workbook: "+err.Error())
				return
			}
			defer f.Close()
			writeWorkbook(w, f, fmt.Sprintf("freee_import_%s.xlsx", stamp), log)
		} else {
			w.Header().Set("Content-Type", "text/csv; charset=Shift_JIS")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="freee_import_%s.csv"`, stamp))
			if err := fileio.WriteCSV(w, after.Headers, after.Rows); err != nil {
				log.Error().Err(err).Msg("write csv")
				return
			}
		}

		log.Info().
			Int("rows", len(after.Rows)).
			Dur("elapsed", time.Since(start)).
			Msg("export done")
	}
}
