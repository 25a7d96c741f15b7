package cache

import (
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
)

func TestContainer_PutMatch(t *testing.T) {
	store := NewContainerStore(kv.NewMemMedium(), nil)
	container := store.Open(Version)

	entry := Entry{
		URL:    "/index.html",
		Status: http.StatusOK,
		Header: map[string][]string{"Content-Type": {"text/html"}},
		Body:   []byte("<html></html>"),
	}
	container.Put("/index.html", entry)

	got, ok := container.Match("/index.html")
	require.True(t, ok)
	assert.Equal(t, entry.Status, got.Status)
	assert.Equal(t, entry.Body, got.Body)
	assert.Equal(t, entry.Header, got.Header)

	_, ok = container.Match("/missing")
	assert.False(t, ok)
}

func TestContainerStore_NamesAreDistinct(t *testing.T) {
	store := NewContainerStore(kv.NewMemMedium(), nil)
	store.Open("sticky-notes-v1").Put("/", Entry{URL: "/"})
	store.Open("sticky-notes-v1").Put("/a", Entry{URL: "/a"})
	store.Open(Version).Put("/", Entry{URL: "/"})

	names, err := store.Names()
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"sticky-notes-v1", Version}, names)
}

func TestContainerStore_DeleteRemovesOnlyNamed(t *testing.T) {
	store := NewContainerStore(kv.NewMemMedium(), nil)
	store.Open("old").Put("/", Entry{URL: "/"})
	store.Open(Version).Put("/", Entry{URL: "/"})

	require.NoError(t, store.Delete("old"))

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{Version}, names)

	_, ok := store.Open(Version).Match("/")
	assert.True(t, ok, "surviving container must keep its entries")
}

func TestContainerStore_DeleteAll(t *testing.T) {
	store := NewContainerStore(kv.NewMemMedium(), nil)
	store.Open("a").Put("/", Entry{URL: "/"})
	store.Open("b").Put("/", Entry{URL: "/"})

	require.NoError(t, store.DeleteAll())

	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestContainerStore_IgnoresForeignKeys(t *testing.T) {
	medium := kv.NewMemMedium()
	// The note and settings stores share the medium; their keys are not
	// cache containers.
	require.NoError(t, medium.Set("sticky-notes", "[]"))
	require.NoError(t, medium.Set("app-settings", "{}"))

	store := NewContainerStore(medium, nil)
	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.DeleteAll())
	_, ok, err := medium.Get("sticky-notes")
	require.NoError(t, err)
	assert.True(t, ok, "foreign keys must survive cache clearing")
}