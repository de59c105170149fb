package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
	"github.com/jimmydengpeng/BaziMiao/internal/middleware"
	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newChartRouter(t *testing.T, charts ChartService) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Get("/health", Health)
	r.Get("/openapi.json", OpenAPI)
	r.Route("/v1", NewHandler(charts, slog.New(slog.DiscardHandler)).Routes)
	return r
}

func realCharts() *service.ChartService {
	eng := engine.NewEngine(calendar.NewLunarCalendar(),
		engine.WithClock(func() time.Time { return testNow }),
		engine.WithLogger(slog.New(slog.DiscardHandler)))
	return service.NewChartService(eng, service.Config{SearchMaxYears: 300, SearchWorkers: 2}, slog.New(slog.DiscardHandler))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "test-req")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newChartRouter(t, realCharts()), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	for _, p := range []string{"/v1/charts", "/v1/analysis", "/v1/relations", "/v1/search", "/charts/view"} {
		assert.NotNil(t, doc.Paths.Find(p), p)
	}

	rec := do(t, newChartRouter(t, realCharts()), http.MethodGet, "/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)
}

func TestCreateChart(t *testing.T) {
	rec := do(t, newChartRouter(t, realCharts()), http.MethodPost, "/v1/charts",
		`{"name":"test","gender":"male","birth":"2000-01-01T12:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "戊阳土", body["day_master_display"])

	year := body["year_pillar"].(map[string]any)
	assert.Equal(t, "己", year["heaven_stem"].(map[string]any)["name"])

	cycle := body["destiny_cycle"].(map[string]any)
	assert.Equal(t, false, cycle["is_forward"])
	pillars := cycle["destiny_pillars"].([]any)
	require.Len(t, pillars, engine.LuckPillarCount)
	current := 0
	for _, p := range pillars {
		if p.(map[string]any)["is_current"] == true {
			current++
		}
	}
	assert.Equal(t, 1, current)

	rel := body["ganzi_relations"].(map[string]any)
	assert.NotNil(t, rel["stem_relations"])
}

func TestCreateChart_Errors(t *testing.T) {
	h := newChartRouter(t, realCharts())
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"empty body", "", http.StatusBadRequest, "request body is required"},
		{"malformed json", "{", http.StatusBadRequest, "invalid request body"},
		{"unknown field", `{"gender":"male","birth":"2000-01-01T12:00","planet":"mars"}`, http.StatusBadRequest, "planet"},
		{"trailing object", `{"gender":"male","birth":"2000-01-01T12:00"}{}`, http.StatusBadRequest, "single JSON object"},
		{"validation", `{"gender":"x","birth":"2000-01-01T12:00"}`, http.StatusBadRequest, "unknown gender"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/charts", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.status, body.Code)
			assert.Contains(t, body.Message, tc.msg)
			assert.Equal(t, "test-req", body.RequestID)
		})
	}
}

func TestCreateAnalysis(t *testing.T) {
	rec := do(t, newChartRouter(t, realCharts()), http.MethodPost, "/v1/analysis",
		`{"gender":"male","birth":"2000-01-01T12:00","focus":["健康"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	chart := body["chart"].(map[string]any)
	pillars := chart["destiny_cycle"].(map[string]any)["destiny_pillars"].([]any)
	_, hasFlag := pillars[0].(map[string]any)["is_current"]
	assert.True(t, hasFlag)
	assert.Equal(t, "身强", body["analysis"].(map[string]any)["pattern"])
	assert.NotEmpty(t, body["knowledge"])
}

func TestComputeRelations(t *testing.T) {
	h := newChartRouter(t, realCharts())
	rec := do(t, h, http.MethodPost, "/v1/relations",
		`{"pillars":{"year":"甲子","month":"丙寅","day":"己卯","hour":"庚午"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rel domain.Relations
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rel))
	require.NotEmpty(t, rel.Stem)
	assert.Contains(t, rec.Body.String(), "甲己合化土")

	rec = do(t, h, http.MethodPost, "/v1/relations", `{"pillars":{"year":"甲子"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchDates(t *testing.T) {
	rec := do(t, newChartRouter(t, realCharts()), http.MethodPost, "/v1/search",
		`{"year":"己卯","month":"丙子","day":"戊午","hour":"戊午","start_year":1999,"end_year":2001}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res service.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 2000, res.Matches[0].Year)
	assert.Equal(t, "农历1999年冬月25日 12时", res.Matches[0].LunarDisplay)
}

func TestUnknownRoutes(t *testing.T) {
	h := newChartRouter(t, realCharts())

	rec := do(t, h, http.MethodPost, "/v1/horoscope", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "no route for POST /v1/horoscope", body.Message)
	assert.Equal(t, "test-req", body.RequestID)

	rec = do(t, h, http.MethodGet, "/v1/charts", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body = decodeError(t, rec)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Code)
	assert.Contains(t, body.Message, "GET")
	assert.Equal(t, "test-req", body.RequestID)
}

// stubCharts fails every call with err.
type stubCharts struct{ err error }

func (s stubCharts) BuildChart(context.Context, service.ChartRequest) (domain.Chart, error) {
	return domain.Chart{}, s.err
}

func (s stubCharts) Analyze(context.Context, service.ChartRequest, []string) (service.AnalysisResult, error) {
	return service.AnalysisResult{}, s.err
}

func (s stubCharts) Relations(context.Context, service.RelationsRequest) (domain.Relations, error) {
	return domain.Relations{}, s.err
}

func (s stubCharts) Search(context.Context, service.SearchRequest) (service.SearchResult, error) {
	return service.SearchResult{}, s.err
}

func (s stubCharts) Now() time.Time { return testNow }

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", domain.ErrValidation("bad input"), http.StatusBadRequest, "bad input"},
		{"not found", domain.ErrNotFound("missing"), http.StatusNotFound, "missing"},
		{"calendar", domain.ErrCalendar(errors.New("table"), "calendar failed"), http.StatusUnprocessableEntity, "calendar failed"},
		{"wrapped calendar", errors.Join(errors.New("ctx"), engine.ErrSolarTermSearchExhausted), http.StatusUnprocessableEntity, "no solar term"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline"},
		{"internal", errors.New("secret detail"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newChartRouter(t, stubCharts{err: tc.err})
			rec := do(t, h, http.MethodPost, "/v1/search", `{"year":"甲子","month":"丙寅","day":"甲子","hour":"甲子"}`)
			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Contains(t, body.Message, tc.msg)
			assert.False(t, strings.Contains(body.Message, "secret"))
		})
	}
}
