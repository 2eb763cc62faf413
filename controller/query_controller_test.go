package controller

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/models"
	"github/itish2003/titanic/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds, err := dataset.Load("")
	require.NoError(t, err)

	log := logger.NewNop()
	dispatcher := services.NewDispatcher(services.NewChartCache(time.Minute), log)
	return NewRouter(services.NewQueryService(dispatcher, ds, log), log, "http://localhost:5173")
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func queryURL(path, question string) string {
	return path + "?question=" + url.QueryEscape(question)
}

func TestQueryGet(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, queryURL("/api/v1/query", "What percentage of passengers were male?"), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^\d{1,3}\.\d{2}% of the passengers were male\.$`, resp.Response)
	assert.Empty(t, resp.Image)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, w.Header().Get("X-Request-ID"))
}

func TestQueryPostJSONFallback(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{"question":"tell me a joke"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, services.FallbackText, raw["response"])
	assert.NotContains(t, raw, "image")
	assert.Equal(t, "abc-123", raw["request_id"])
}

func TestQueryChartReturnsBase64PNG(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, queryURL("/api/v1/query", "show the histogram of passenger ages"), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Here is the histogram of passenger ages.", resp.Response)

	raw, err := base64.StdEncoding.DecodeString(resp.Image)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestQueryMissingQuestion(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/query", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryImage(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, queryURL("/api/v1/query/image", "boxplot of fares"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	_, err := png.Decode(w.Body)
	assert.NoError(t, err)

	w = serve(router, httptest.NewRequest(http.MethodGet, queryURL("/api/v1/query/image", "average ticket fare"), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuestionsAndDataset(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var questions models.SupportedQuestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	assert.Equal(t, 9, questions.Count)
	assert.Equal(t, "how many passengers were in each age group", questions.Questions[8].Phrase)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dataset", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.DatasetSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	ds, err := dataset.Load("")
	require.NoError(t, err)
	want := ds.Summary()
	assert.Equal(t, want.Rows, summary.Rows)
	assert.Equal(t, want.MissingAge, summary.MissingAge)
	assert.Equal(t, want.Sample, summary.Sample)
	assert.Equal(t, want.Source, summary.Source)
	assert.True(t, strings.HasPrefix(summary.Source, "bundled:data/"), summary.Source)
	if summary.Sample {
		assert.Equal(t, 30, summary.Rows)
	} else {
		assert.Equal(t, 891, summary.Rows)
	}
}

func TestHealthAndCORS(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/query", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(router, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
