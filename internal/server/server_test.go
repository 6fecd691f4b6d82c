package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/history"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCorrector struct {
	result models.ProofreadResult
	err    error
	got    models.ProofreadRequest
}

func (s *stubCorrector) Correct(_ context.Context, text string, scenario models.Scenario) (models.ProofreadResult, error) {
	s.got = models.ProofreadRequest{Text: text, Scenario: scenario}
	return s.result, s.err
}

type stubExtractor struct {
	got []byte
}

func (s *stubExtractor) Name() string { return "stub" }

func (s *stubExtractor) Import(_ context.Context, data []byte) (string, error) {
	s.got = data
	return "标题：测试", nil
}

type testEnv struct {
	handler   http.Handler
	corrector *stubCorrector
	extractor *stubExtractor
	history   *history.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"), 50, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	contentDiffer, err := differ.NewContentDiffer(zerolog.Nop(), config.NewDefaultDiffConfig())
	require.NoError(t, err)

	env := &testEnv{
		corrector: &stubCorrector{result: models.ProofreadResult{
			Corrected:    "今天天气很好，我们去公园散步。",
			Explanations: []string{"“玩”改为“散步”"},
		}},
		extractor: &stubExtractor{},
		history:   store,
	}
	cfg := config.NewDefaultServerConfig()
	cfg.MaxBodySizeMB = 1
	env.handler = New(cfg, Dependencies{
		Corrector: env.corrector,
		Extractor: env.extractor,
		Differ:    contentDiffer,
		History:   store,
	}, zerolog.Nop()).Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProofread(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/proofread", map[string]string{
		"text":     "今天天气很好，我们去公园玩。",
		"scenario": "新闻出版 (严谨)",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ProofreadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "今天天气很好，我们去公园散步。", result.Corrected)
	assert.Equal(t, models.ScenarioPublishing, env.corrector.got.Scenario)

	entries, err := env.history.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "今天天气很好，我们去公园玩。", entries[0].Original)
	assert.Equal(t, "=12\t-1\t+%E6%95%A3%E6%AD%A5\t=1", entries[0].DiffDelta)
}

func TestProofread_RecordsHistoryWhenDiffFails(t *testing.T) {
	env := newTestEnv(t)
	env.corrector.result = models.ProofreadResult{Corrected: "坏\xff", Explanations: []string{}}

	rec := env.do(t, http.MethodPost, "/api/proofread", map[string]string{
		"text":     "原文",
		"scenario": "official",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := env.history.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "原文", entries[0].Original)
	assert.Empty(t, entries[0].DiffDelta)
}

func TestProofread_AcceptsScenarioAlias(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/proofread", map[string]string{"text": "文本", "scenario": "official"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ScenarioOfficial, env.corrector.got.Scenario)
}

func TestProofread_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"invalid json", `{"text":`, http.StatusBadRequest},
		{"missing text", map[string]string{"scenario": "official"}, http.StatusBadRequest},
		{"unknown scenario", map[string]string{"text": "x", "scenario": "poetry"}, http.StatusBadRequest},
		{"too large", `{"text":"` + strings.Repeat("a", 2<<20) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/proofread", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decodeError(t, rec).Retryable)
		})
	}
}

func TestProofread_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		retryable  bool
		retryAfter string
	}{
		{"rate limited", correction.NewRateLimitedError(429, "quota exceeded", 1500*time.Millisecond), http.StatusTooManyRequests, true, "2"},
		{"network", correction.NewNetworkError("upstream unreachable", nil), http.StatusBadGateway, true, ""},
		{"malformed", correction.NewMalformedResponseError("bad model output", nil), http.StatusBadGateway, false, ""},
		{"permanent", correction.NewPermanentError(403, "API key not valid", nil), http.StatusInternalServerError, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.corrector.err = tt.err

			rec := env.do(t, http.MethodPost, "/api/proofread", map[string]string{"text": "文本"})
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))

			body := decodeError(t, rec)
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.NotEmpty(t, body.Error)

			entries, err := env.history.List(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestProofread_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/proofread", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExtractNewspaper(t *testing.T) {
	env := newTestEnv(t)
	pdf := []byte("%PDF-1.7 data")

	rec := env.do(t, http.MethodPost, "/api/extract-newspaper", models.ExtractRequest{
		PDFBase64: base64.StdEncoding.EncodeToString(pdf),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ExtractResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "标题：测试", result.Text)
	assert.Equal(t, pdf, env.extractor.got)

	rec = env.do(t, http.MethodPost, "/api/extract-newspaper", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/extract-newspaper", map[string]string{"pdfBase64": "%%%"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiff(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/diff", models.DiffRequest{
		Original:  "今天天气很好，我们去公园玩。",
		Corrected: "今天天气很好，我们去公园散步。",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DiffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, []models.ContentDiff{
		{Operation: models.DiffEqual, Text: "今天天气很好，我们去公园"},
		{Operation: models.DiffDelete, Text: "玩"},
		{Operation: models.DiffInsert, Text: "散步"},
		{Operation: models.DiffEqual, Text: "。"},
	}, resp.Result.Diffs)
	assert.Equal(t, 2, resp.Result.CharsAdded)
	assert.Equal(t, 1, resp.Result.CharsDeleted)
	assert.Contains(t, resp.HTML, `<del class="gw-del">玩</del>`)
	assert.Equal(t, "=12\t-1\t+%E6%95%A3%E6%AD%A5\t=1", resp.Delta)
}

func TestDiff_RejectsOversizedInput(t *testing.T) {
	env := newTestEnv(t)
	large := strings.Repeat("字", 100_000)

	rec := env.do(t, http.MethodPost, "/api/diff", models.DiffRequest{Original: large, Corrected: "字"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "diff limit")

	rec = env.do(t, http.MethodPost, "/api/diff", models.DiffRequest{Original: "字", Corrected: large})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryRoutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	saved, err := env.history.Append(ctx, models.HistoryEntry{Original: "旧", Corrected: "新", Scenario: models.ScenarioNewMedia})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, saved.ID, entries[0].ID)

	rec = env.do(t, http.MethodGet, "/api/history/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/history?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/history", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/history/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOptionalDependencies(t *testing.T) {
	handler := New(config.NewDefaultServerConfig(), Dependencies{Corrector: &stubCorrector{}}, zerolog.Nop()).Handler()

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/extract-newspaper"},
		{http.MethodPost, "/api/diff"},
		{http.MethodGet, "/api/history"},
		{http.MethodDelete, "/api/history"},
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, route.path)
	}
}
