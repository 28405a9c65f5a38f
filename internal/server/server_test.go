package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcardOrigin(t *testing.T) {
	cases := []struct {
		origin  string
		pattern string
		want    bool
	}{
		{"https://app.twotable.co.uk", "https://*.twotable.co.uk", true},
		{"https://staging.twotable.co.uk", "https://*.twotable.co.uk", true},
		{"https://twotable.co.uk", "https://*.twotable.co.uk", false},
		{"https://a.b.twotable.co.uk", "https://*.twotable.co.uk", false},
		{"https://eviltwotable.co.uk", "https://*.twotable.co.uk", false},
		{"http://app.twotable.co.uk", "https://*.twotable.co.uk", false},
		{"https://exact.example.com", "https://exact.example.com", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchWildcardOrigin(tc.origin, tc.pattern), "%s vs %s", tc.origin, tc.pattern)
	}
}

func corsProbe(t *testing.T, origins []string, origin string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := withCORS(origins)(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWithCORSAllowedOrigin(t *testing.T) {
	origins := []string{"https://twotable.co.uk", "https://*.twotable.co.uk"}

	rec := corsProbe(t, origins, "https://twotable.co.uk")
	assert.Equal(t, "https://twotable.co.uk", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = corsProbe(t, origins, "https://app.twotable.co.uk")
	assert.Equal(t, "https://app.twotable.co.uk", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithCORSDisallowedOrigin(t *testing.T) {
	origins := []string{"https://twotable.co.uk"}

	rec := corsProbe(t, origins, "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code, "request still served, just without CORS headers")
}

func TestWithCORSNoOriginHeader(t *testing.T) {
	rec := corsProbe(t, []string{"https://twotable.co.uk"}, "")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithCORSPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("preflight must not reach the next handler")
	})
	handler := withCORS([]string{"https://twotable.co.uk"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/waitlist", nil)
	req.Header.Set("Origin", "https://twotable.co.uk")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://twotable.co.uk", rec.Header().Get("Access-Control-Allow-Origin"))
}
