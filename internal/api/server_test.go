package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/domain"
	"studybuddy/internal/logx"
	"studybuddy/internal/quotes"
	"studybuddy/internal/scheduler"
)

type fixedQuote string

func (q fixedQuote) Line(context.Context) string { return string(q) }

func newTestServer(t *testing.T, q QuoteSource) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	engine := scheduler.NewEngine(logx.Nop(), scheduler.WithClock(func() time.Time { return now }))
	s := New(engine, q, logx.Nop())
	s.NewID = func() string { return "run-1" }
	return s.Router()
}

func do(t *testing.T, h http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndStrategies(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/strategies", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"strategies":["even","urgency","pomodoro"]}`, w.Body.String())
}

func TestCreateSchedule(t *testing.T) {
	h := newTestServer(t, nil)

	body := `{"strategy":"even","courses":[{"course":"Math","deadline":"2024-03-12","hours":3},{"course":"","deadline":"2024-03-12","hours":"1"}]}`
	w := do(t, h, http.MethodPost, "/api/schedule", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, "even", resp.Strategy)
	assert.Equal(t, "2024-03-10", resp.Today)
	require.Len(t, resp.Blocks, 3)
	for i, d := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		assert.Equal(t, domain.ScheduleBlock{Course: "Math", Kind: domain.KindStudy, DurationMinutes: 60, Date: d}, resp.Blocks[i])
	}
	require.Len(t, resp.Summary, 1)
	assert.Equal(t, 180, resp.Summary[0].Minutes)
	assert.InDelta(t, 100.0, resp.Summary[0].Share, 1e-9)
}

func TestCreateScheduleTodayOverride(t *testing.T) {
	h := newTestServer(t, nil)

	body := `{"strategy":"urgency","today":"2024-03-12","courses":[{"course":"Math","deadline":"2024-03-11","hours":3}]}`
	w := do(t, h, http.MethodPost, "/api/schedule", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"run_id":"run-1","strategy":"urgency","today":"2024-03-12","blocks":[],"summary":[]}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/schedule", `{"strategy":"even","today":"12/03/2024","courses":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid today")
}

func TestCreateScheduleErrors(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/schedule", `{"strategy":"EVEN","courses":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown strategy")

	w = do(t, h, http.MethodPost, "/api/schedule", `{"strategy":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON data"}`, w.Body.String())
}

func TestQuote(t *testing.T) {
	w := do(t, newTestServer(t, fixedQuote("Study hard - Someone")), http.MethodGet, "/api/quote", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"quote":"Study hard - Someone"}`, w.Body.String())

	w = do(t, newTestServer(t, nil), http.MethodGet, "/api/quote", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), quotes.FallbackText)
}

const downloadData = `[{"course":"Math","block":"study","duration":60,"date":"2024-03-10"}]`

func TestDownload(t *testing.T) {
	h := newTestServer(t, nil)
	q := "?data=" + url.QueryEscape(downloadData)

	w := do(t, h, http.MethodGet, "/download/csv"+q, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="schedule.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "course,block,duration,date\r\nMath,study,60,2024-03-10\r\n", w.Body.String())

	w = do(t, h, http.MethodGet, "/download/txt"+q, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-10 | Math | study | 60 min", w.Body.String())

	w = do(t, h, http.MethodGet, "/download/xlsx"+q, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"), "xlsx is a zip archive")
}

func TestDownloadBrotli(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/download/csv?data="+url.QueryEscape(downloadData), "", map[string]string{"Accept-Encoding": "gzip, br"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, "course,block,duration,date\r\nMath,study,60,2024-03-10\r\n", string(plain))
}

func TestDownloadErrors(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/download/csv?data=not-json", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON data"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/download/pdf?data="+url.QueryEscape(downloadData), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid file type"}`, w.Body.String())
}

func TestAcceptsBrotli(t *testing.T) {
	cases := map[string]bool{
		"":               false,
		"gzip":           false,
		"br":             true,
		"gzip, BR;q=0.5": true,
		"br;q=0":         false,
		"brotli":         false,
	}
	for in, want := range cases {
		assert.Equal(t, want, acceptsBrotli(in), in)
	}
}
