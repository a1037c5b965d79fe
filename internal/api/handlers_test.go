package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credcheck/claimscope/internal/analyzer"
	"github.com/credcheck/claimscope/internal/config"
	"github.com/credcheck/claimscope/internal/models"
)

type memStore struct {
	history []models.HistoryEntry
	reports []models.UserReport
}

func (m *memStore) AppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	m.history = append([]models.HistoryEntry{entry}, m.history...)
	return nil
}

func (m *memStore) GetHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	return m.history, nil
}

func (m *memStore) AppendReport(ctx context.Context, report models.UserReport) (int, error) {
	m.reports = append([]models.UserReport{report}, m.reports...)
	return len(m.reports), nil
}

func (m *memStore) GetReports(ctx context.Context) ([]models.UserReport, error) {
	return m.reports, nil
}

func (m *memStore) ClearAll(ctx context.Context) error {
	m.history = nil
	m.reports = nil
	return nil
}

func (m *memStore) Close() error   { return nil }
func (m *memStore) Migrate() error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *memStore) {
	t.Helper()
	store := &memStore{}
	engine := analyzer.NewEngine(analyzer.WithStore(store))
	cfg := config.DefaultConfig()
	server := httptest.NewServer(NewRouter(cfg, engine, store))
	t.Cleanup(server.Close)
	return server, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthCheck(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestAnalyzeClaim_Endpoint(t *testing.T) {
	server, store := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/analyze", models.AnalyzeRequest{
		Text:    "Argentina won the 2022 World Cup",
		PageURL: "https://example.com/article",
		Domain:  "example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Analysis  models.ClaimAnalysis `json:"analysis"`
		Persisted bool                 `json:"persisted"`
	}
	decodeBody(t, resp, &body)

	assert.True(t, body.Persisted)
	assert.NotEmpty(t, body.Analysis.ID)
	assert.Equal(t, models.LevelVerified, body.Analysis.Recommendation.Level)
	assert.Len(t, store.history, 1)
}

func TestAnalyzeClaim_RejectsEmptyText(t *testing.T) {
	server, _ := newTestServer(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		resp := postJSON(t, server.URL+"/api/v1/analyze", models.AnalyzeRequest{Text: text})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Text is required", body["error"])
	}
}

func TestAnalyzeClaim_RejectsMalformedBody(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/analyze", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrentAnalysis(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/analyses/current")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	postJSON(t, server.URL+"/api/v1/analyze", models.AnalyzeRequest{
		Text:   "the council approved the new budget",
		Domain: "example.com",
	}).Body.Close()

	resp, err = http.Get(server.URL + "/api/v1/analyses/current")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis models.ClaimAnalysis
	decodeBody(t, resp, &analysis)
	assert.Equal(t, "the council approved the new budget", analysis.ClaimText)
}

func TestHistoryEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	// Empty history serializes as an empty array, not null.
	resp, err := http.Get(server.URL + "/api/v1/history")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		History []models.HistoryEntry `json:"history"`
	}
	decodeBody(t, resp, &body)
	assert.NotNil(t, body.History)
	assert.Empty(t, body.History)

	for i := 0; i < 3; i++ {
		postJSON(t, server.URL+"/api/v1/analyze", models.AnalyzeRequest{
			Text:   fmt.Sprintf("claim number %d", i),
			Domain: "example.com",
		}).Body.Close()
	}

	resp, err = http.Get(server.URL + "/api/v1/history")
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.Len(t, body.History, 3)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/history", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/history")
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.Empty(t, body.History)
}

func TestSubmitReport(t *testing.T) {
	server, store := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/reports", models.ReportRequest{
		ClaimID:     "claim-1",
		ClaimText:   "the sky is green",
		Domain:      "example.com",
		Score:       40,
		UserVerdict: false,
		PageURL:     "https://example.com/p",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Total)
	require.Len(t, store.reports, 1)
	assert.False(t, store.reports[0].Timestamp.IsZero())
}

func TestSubmitReport_RequiresClaimID(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/reports", models.ReportRequest{
		ClaimText: "no id given",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitReport_TruncatesLongText(t *testing.T) {
	server, store := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/reports", models.ReportRequest{
		ClaimID:   "claim-1",
		ClaimText: strings.Repeat("y", models.MaxReportClaimLen+100),
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, store.reports, 1)
	assert.Len(t, store.reports[0].ClaimText, models.MaxReportClaimLen)
}

func TestGetReports(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/reports")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Reports []models.UserReport `json:"reports"`
	}
	decodeBody(t, resp, &body)
	assert.NotNil(t, body.Reports)
	assert.Empty(t, body.Reports)

	postJSON(t, server.URL+"/api/v1/reports", models.ReportRequest{
		ClaimID: "claim-1", ClaimText: "first",
	}).Body.Close()
	postJSON(t, server.URL+"/api/v1/reports", models.ReportRequest{
		ClaimID: "claim-2", ClaimText: "second",
	}).Body.Close()

	resp, err = http.Get(server.URL + "/api/v1/reports")
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	require.Len(t, body.Reports, 2)
	assert.Equal(t, "claim-2", body.Reports[0].ClaimID)
}

func TestRequestIDHeader(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRateLimitApplies(t *testing.T) {
	store := &memStore{}
	engine := analyzer.NewEngine(analyzer.WithStore(store))
	cfg := config.DefaultConfig()
	cfg.RateLimits.RequestsPerMinute = 3
	server := httptest.NewServer(NewRouter(cfg, engine, store))
	t.Cleanup(server.Close)

	var last int
	deadline := time.Now().Add(5 * time.Second)
	for i := 0; i < 10 && time.Now().Before(deadline); i++ {
		resp, err := http.Get(server.URL + "/api/v1/history")
		require.NoError(t, err)
		resp.Body.Close()
		last = resp.StatusCode
		if last == http.StatusTooManyRequests {
			break
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
