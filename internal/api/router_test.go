package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabgonzales/portfolio-api/internal/persona"
)

func newTestRouter(chatHandler http.Handler) http.Handler {
	return NewRouter(RouterConfig{
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Profile:            persona.Default(),
		ChatHandler:        chatHandler,
	})
}

func echoOK() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"response": "ok"})
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouter_Health(t *testing.T) {
	w := get(t, newTestRouter(echoOK()), "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	w := get(t, newTestRouter(echoOK()), "/nope")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not found", body.Error)
}

func TestRouter_Portfolio(t *testing.T) {
	w := get(t, newTestRouter(echoOK()), "/api/portfolio")

	require.Equal(t, http.StatusOK, w.Code)
	var p persona.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, persona.Default().Name, p.Name)
}

func TestRouter_ChatMountedForAllMethods(t *testing.T) {
	// The chat handler owns its method check, so even a GET must reach it
	// instead of the router's 405.
	var sawMethods []string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawMethods = append(sawMethods, r.Method)
		w.WriteHeader(http.StatusTeapot)
	})
	router := newTestRouter(h)

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		r := httptest.NewRequest(method, "/api/chat", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusTeapot, w.Code)
	}
	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, sawMethods)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	w := get(t, newTestRouter(echoOK()), "/health")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_RequestID(t *testing.T) {
	w := get(t, newTestRouter(echoOK()), "/health")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_RecoveryProducesJSON500(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	router := newTestRouter(panicky)

	r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(echoOK())

	// A labeled counter only shows up once it has a sample.
	get(t, router, "/health")
	w := get(t, router, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}
