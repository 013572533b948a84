package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"nayose-service/internal/config"
)

func testConfig() config.Config {
	return config.Config{MinScore: 0.8}
}

func TestMatchHandler(t *testing.T) {
	body := `{
		"query": "サンプル商事",
		"candidates": ["サンプル商事株式会社", "別会社"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(body))
	rec := httptest.NewRecorder()
	Match(zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Query      string `json:"query"`
		Normalized string `json:"normalized"`
		Results    []struct {
			Candidate string  `json:"candidate"`
			Score     float64 `json:"score"`
			Rank      int     `json:"rank"`
			Exact     bool    `json:"exact"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "さんぷる商事", got.Normalized)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "サンプル商事株式会社", got.Results[0].Candidate)
	assert.Equal(t, 1.0, got.Results[0].Score)
	assert.True(t, got.Results[0].Exact)
	assert.Equal(t, 1, got.Results[0].Rank)
}

func TestMatchHandlerBadConfig(t *testing.T) {
	body := `{"query": "あ", "candidates": ["あ"], "topN": 0}`
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(body))
	rec := httptest.NewRecorder()
	Match(zerolog.Nop())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "topN")
}

func TestMatchHandlerBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	Match(zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, files map[string][]struct{ name, content string }, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, fs := range files {
		for _, f := range fs {
			w, err := mw.CreateFormFile(field, f.name)
			require.NoError(t, err)
			_, err = w.Write([]byte(f.content))
			require.NoError(t, err)
		}
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCheckHandlerJSON(t *testing.T) {
	streamed := "伝票番号,借方補助科目,貸方補助科目\n" +
		"100,,サンプル商事\n" +
		"101,未知商店,\n"
	ledger := "借方取引先名,貸方取引先名\n" +
		"サンプル商事株式会社,テスト工業\n"

	body, ctype := multipartBody(t, map[string][]struct{ name, content string }{
		"streamed": {{"streamed.csv", streamed}},
		"ledger":   {{"ledger.csv", ledger}},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/check", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	Check(testConfig(), zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
		Master  struct {
			Partners []string `json:"partners"`
		} `json:"master"`
		Stats struct {
			Rows         int `json:"rows"`
			PartnerExact int `json:"partnerExact"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Contains(t, got.Columns, "借方取引先")
	assert.Contains(t, got.Columns, "freee取引先名候補1")
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "true", got.Rows[0]["_取引先完全一致"])
	assert.Equal(t, "false", got.Rows[1]["_取引先完全一致"])
	assert.NotEmpty(t, got.Rows[1]["freee取引先名候補1"])
	assert.Equal(t, 2, got.Stats.Rows)
	assert.Equal(t, 1, got.Stats.PartnerExact)
	assert.Equal(t, []string{"サンプル商事株式会社", "テスト工業"}, got.Master.Partners)
}

func TestCheckHandlerMissingLedger(t *testing.T) {
	body, ctype := multipartBody(t, map[string][]struct{ name, content string }{
		"streamed": {{"streamed.csv", "伝票番号\n100\n"}},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/check", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	Check(testConfig(), zerolog.Nop())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckHandlerBadWeights(t *testing.T) {
	body, ctype := multipartBody(t, map[string][]struct{ name, content string }{
		"streamed": {{"streamed.csv", "伝票番号,貸方補助科目\n100,あ\n"}},
		"ledger":   {{"ledger.csv", "借方取引先名\nあ\n"}},
	}, map[string]string{"top_n": "-1"})

	req := httptest.NewRequest(http.MethodPost, "/check", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	Check(testConfig(), zerolog.Nop())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerCSV(t *testing.T) {
	reviewed := "伝票番号,借方取引先,貸方取引先,freee取引先名候補1,STREAMED元の取引先,_取引先完全一致\n" +
		"12081508001,,,サンプル商事株式会社,サンプル商事,false\n"

	body, ctype := multipartBody(t, map[string][]struct{ name, content string }{
		"reviewed": {{"reviewed.csv", reviewed}},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/export", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	Export(testConfig(), zerolog.Nop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "freee_import_")

	// Shift_JIS で返るのでUTF-8へ戻して確認
	utf8Body, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), rec.Body.Bytes())
	require.NoError(t, err)
	out := string(utf8Body)

	assert.Contains(t, out, "伝票番号,借方取引先,貸方取引先")
	assert.Contains(t, out, "12081508001,サンプル商事株式会社,サンプル商事株式会社")
	// 作業列は残らない
	assert.NotContains(t, out, "候補")
	assert.NotContains(t, out, "STREAMED元")
}

func TestOptionsFromForm(t *testing.T) {
	form := strings.NewReader("ngram_weight=0.6&top_n=5&min_score=0.9")
	req := httptest.NewRequest(http.MethodPost, "/check", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	opt := optionsFromForm(req, testConfig())
	assert.Equal(t, 0.6, opt.NgramWeight)
	assert.Equal(t, 0.3, opt.PrefixWeight)
	assert.Equal(t, 5, opt.TopN)
	assert.Equal(t, 0.9, opt.MinScore)
}
