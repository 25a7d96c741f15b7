package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
)

func newTestRouter(t *testing.T) (http.Handler, *ContainerStore) {
	t.Helper()
	store := NewContainerStore(kv.NewMemMedium(), nil)
	c := NewController(Options{
		Hostname: "localhost",
		Upstream: "http://localhost:0",
		Fetcher:  offlineFetcher{},
		Store:    store,
	})
	return NewRouter(c, zap.NewNop()), store
}

func TestRouter_ForceUpdateCommand(t *testing.T) {
	router, store := newTestRouter(t)
	store.Open(Version).Put("/", Entry{URL: "/", Status: 200})

	req := httptest.NewRequest(http.MethodPost, "/api/update", strings.NewReader(`{"type":"FORCE_UPDATE"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgCacheCleared)

	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRouter_RejectsNonJSONCommand(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/update", strings.NewReader("FORCE_UPDATE"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_RejectsUnknownMessageType(t *testing.T) {
	router, store := newTestRouter(t)
	store.Open(Version).Put("/", Entry{URL: "/", Status: 200})

	req := httptest.NewRequest(http.MethodPost, "/api/update", strings.NewReader(`{"type":"RELOAD"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{Version}, names, "unknown commands must not clear the cache")
}

func TestRouter_ServesAssetsThroughController(t *testing.T) {
	router, store := newTestRouter(t)
	store.Open(Version).Put("/app.js", Entry{
		URL:    "/app.js",
		Status: http.StatusOK,
		Body:   []byte("cached"),
	})

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cached", rec.Body.String())
}
