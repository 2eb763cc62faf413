package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/itish2003/titanic/dataset"
)

func postForm(question string) *http.Request {
	form := url.Values{"question": {question}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormIndex(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Titanic Dataset Chatbot")
	assert.Contains(t, w.Body.String(), "boxplot of fares")
}

func TestFormIndexFlagsSampleDataset(t *testing.T) {
	router := newTestRouter(t)
	ds, err := dataset.Load("")
	require.NoError(t, err)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	if ds.Summary().Sample {
		assert.Contains(t, w.Body.String(), "Answers come from the bundled 30-row sample")
	} else {
		assert.NotContains(t, w.Body.String(), "bundled 30-row sample")
	}
}

func TestFormAskText(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, postForm("What was the average ticket fare?"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The average ticket fare was $")
	assert.NotContains(t, w.Body.String(), "<img")
}

func TestFormAskChartEmbedsImage(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, postForm("boxplot of fares"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<img src="data:image/png;base64,`)
}

func TestFormAskEmpty(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, postForm("   "))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a question.")
}
