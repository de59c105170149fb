package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/api"
	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

// capturedRequest holds details captured from an incoming HTTP request.
type capturedRequest struct {
	Method string
	Path   string
	Body   string
}

// requestRecorder is a thread-safe recorder for HTTP requests received by httptest servers.
type requestRecorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *requestRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	body, _ := io.ReadAll(req.Body)
	defer func() { _ = req.Body.Close() }()

	r.requests = append(r.requests, capturedRequest{Method: req.Method, Path: req.URL.Path, Body: string(body)})
}

func (r *requestRecorder) last() capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return capturedRequest{}
	}
	return r.requests[len(r.requests)-1]
}

// jsonHandler records the request and responds with status and respBody.
func jsonHandler(rec *requestRecorder, status int, respBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}
}

// newChartServer serves the real /v1 API with a fixed clock.
func newChartServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng := engine.NewEngine(calendar.NewLunarCalendar(),
		engine.WithClock(func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }),
		engine.WithLogger(slog.New(slog.DiscardHandler)))
	charts := service.NewChartService(eng, service.Config{SearchMaxYears: 300, SearchWorkers: 2}, slog.New(slog.DiscardHandler))

	r := chi.NewRouter()
	r.Route("/v1", api.NewHandler(charts, slog.New(slog.DiscardHandler)).Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestCLI_ChartTable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	out, err := runRoot(t, "--host", srv.URL, "-o", "table", "chart", "--birth", "2000-01-01T12:00", "--gender", "male", "--name", "小明")
	require.NoError(t, err)
	assert.Contains(t, out, "己卯 丙子 戊午 戊午")
	assert.Contains(t, out, "戊阳土")
	assert.Contains(t, out, "年柱")
	assert.Contains(t, out, "逆排")
	assert.Contains(t, out, "PILLAR")
}

func TestCLI_ChartJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	out, err := runRoot(t, "--host", srv.URL, "-o", "json", "chart", "-b", "1999-11-25T12:00", "-g", "female", "--calendar", "lunar")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "戊阳土", body["day_master_display"])
	assert.Equal(t, true, body["destiny_cycle"].(map[string]any)["is_forward"])
}

func TestCLI_ChartSendsOptionalFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{}`))
	defer srv.Close()

	_, err := runRoot(t, "--host", srv.URL, "-o", "json", "chart", "-b", "2000-01-01T12:00", "-g", "male", "--tz", "8", "--lon", "116.4")
	require.NoError(t, err)

	captured := rec.last()
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/v1/charts", captured.Path)
	assert.JSONEq(t, `{"name":"","gender":"male","birth":"2000-01-01T12:00","calendar":"solar","tz_offset_hours":8,"longitude":116.4}`, captured.Body)
}

func TestCLI_AnalyzeTable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	out, err := runRoot(t, "--host", srv.URL, "-o", "table", "analyze", "-b", "2000-01-01T12:00", "-g", "male", "--focus", "健康")
	require.NoError(t, err)
	assert.Contains(t, out, "身强")
	assert.Contains(t, out, "日主五行：土")
	assert.Contains(t, out, "TOPIC")
}

func TestCLI_Relations(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	out, err := runRoot(t, "--host", srv.URL, "-o", "table", "relations", "year=甲子", "month=丙寅", "day=己卯", "hour=庚午")
	require.NoError(t, err)
	assert.Contains(t, out, "甲己合化土")
	assert.Contains(t, out, "year/day")
}

func TestParseSlotArgs(t *testing.T) {
	got, err := parseSlotArgs([]string{"year=甲子", " luck = 壬申 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"year": "甲子", "luck": "壬申"}, got)

	for _, bad := range [][]string{{"year"}, {"=甲子"}, {"year="}, {"year=甲子", "year=乙丑"}} {
		_, err := parseSlotArgs(bad)
		assert.Error(t, err, strings.Join(bad, " "))
	}
}

func TestCLI_Search(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	out, err := runRoot(t, "--host", srv.URL, "-o", "table", "search", "己卯", "丙子", "戊午", "戊午", "--start", "1999", "--end", "2001")
	require.NoError(t, err)
	assert.Contains(t, out, "1 match(es)")
	assert.Contains(t, out, "2000-01-01")
	assert.Contains(t, out, "农历1999年冬月25日")
}

func TestCLI_ErrorPropagation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newChartServer(t)

	_, err := runRoot(t, "--host", srv.URL, "chart", "-b", "2000-01-01T12:00", "-g", "x")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Contains(t, apiErr.Message, "unknown gender")
}

func TestCLI_ConnectionRefused(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runRoot(t, "--host", "http://127.0.0.1:1", "search", "己卯", "丙子", "戊午", "戊午")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}

func TestCLI_HostPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	profileRec, envRec := &requestRecorder{}, &requestRecorder{}
	profileSrv := httptest.NewServer(jsonHandler(profileRec, 200, `{}`))
	defer profileSrv.Close()
	envSrv := httptest.NewServer(jsonHandler(envRec, 200, `{}`))
	defer envSrv.Close()

	_, err := runRoot(t, "config", "set-profile", "--name", "default", "--host", profileSrv.URL)
	require.NoError(t, err)

	_, err = runRoot(t, "-o", "json", "relations", "year=甲子", "month=丙寅", "day=己卯", "hour=庚午")
	require.NoError(t, err)
	assert.Equal(t, "/v1/relations", profileRec.last().Path)

	t.Setenv("BAZI_HOST", envSrv.URL)
	_, err = runRoot(t, "-o", "json", "relations", "year=甲子", "month=丙寅", "day=己卯", "hour=庚午")
	require.NoError(t, err)
	assert.Equal(t, "/v1/relations", envRec.last().Path)

	_, err = runRoot(t, "--profile", "missing", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "missing" not found`)
}

func TestCLI_RejectsBadOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := runRoot(t, "-o", "yaml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestCLI_VersionJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out, err := runRoot(t, "version", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"dev","commit":"none"}`, out)
}
