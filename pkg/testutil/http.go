// Package testutil holds request builders and response assertions shared by
// handler and router tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BrowserUserAgent is a desktop Chrome User-Agent string.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// NewRequest builds a request without a body or User-Agent.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewBrowserRequest builds a GET carrying a browser User-Agent, so view
// recording does not treat it as a crawler.
func NewBrowserRequest(t *testing.T, path string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("User-Agent", BrowserUserAgent)
	return req
}

// DoRequest serves req and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse decodes the JSON body into a T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "decode response body")
	return &out
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code, body: %s", rr.Body.String())
}

func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status and the "error" field of the body.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	body := UnmarshalResponse[struct {
		Error string `json:"error"`
	}](t, rr)
	assert.Equal(t, expectedCode, body.Error, "unexpected error code")
}

// AssertNoShareHeaders checks the response may neither be cached across
// users nor indexed.
func AssertNoShareHeaders(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	assert.Contains(t, rr.Header().Get("Cache-Control"), "private")
	assert.Contains(t, rr.Header().Get("X-Robots-Tag"), "noindex")
	assert.Contains(t, rr.Header().Get("X-Robots-Tag"), "noarchive")
}
