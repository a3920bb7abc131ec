package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/report"
	"github.com/georgiaharvey/club-reports/pkg/anthropic"
)

type fakeSource struct {
	set model.SheetSet
	err error
}

func (f fakeSource) FetchAll(context.Context) (model.SheetSet, error) {
	return f.set, f.err
}

type fakeChat struct {
	answer string
	err    error
}

func (f fakeChat) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{Text: f.answer}, nil
}

func testSource() fakeSource {
	return fakeSource{set: model.SheetSet{
		"Cashier Reporting": {
			{"Date:", "8/1", "8/2"},
			{"Total Sales:", "100.00", "200.50"},
		},
	}}
}

func TestResolvePort_FlagWins(t *testing.T) {
	assert.Equal(t, 9090, resolvePort(9090, 8080))
}

func TestResolvePort_FlagZero(t *testing.T) {
	assert.Equal(t, 8080, resolvePort(0, 8080))
}

func TestServeHealth(t *testing.T) {
	router := buildRouter(testSource(), report.Options{Year: 2025}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServeReport(t *testing.T) {
	router := buildRouter(testSource(), report.Options{
		Granularity: model.GranularityMonthly,
		Year:        2025,
	}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rep model.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	require.Len(t, rep.CashierSales, 1)
	assert.Equal(t, "August 2025", rep.CashierSales[0].Label)
	assert.InDelta(t, 300.50, rep.CashierSales[0].Total, 0.001)
}

func TestServeReport_FetchError(t *testing.T) {
	router := buildRouter(fakeSource{err: eris.New("quota exceeded")}, report.Options{}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServeChat(t *testing.T) {
	router := buildRouter(testSource(), report.Options{Year: 2025}, fakeChat{answer: "Sales were up."}, "test-model")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"prompt":"How were sales?"}`)))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Sales were up.", body["answer"])
}

func TestServeChat_NotConfigured(t *testing.T) {
	router := buildRouter(testSource(), report.Options{Year: 2025}, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"prompt":"hi"}`)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeChat_MissingPrompt(t *testing.T) {
	router := buildRouter(testSource(), report.Options{Year: 2025}, fakeChat{}, "test-model")

	for _, payload := range []string{`{}`, `{"prompt":""}`, `not json`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)
	}
}

func TestServeChat_UpstreamError(t *testing.T) {
	router := buildRouter(testSource(), report.Options{Year: 2025}, fakeChat{err: eris.New("overloaded")}, "test-model")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"prompt":"hi"}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
