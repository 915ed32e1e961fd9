package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryList(t *testing.T) {
	directory, err := NewDirectory()
	require.NoError(t, err)

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, directory.List("", ""), 3)
	})

	t.Run("filters by creator", func(t *testing.T) {
		stores := directory.List("fid:7", "")
		require.Len(t, stores, 2)
		for _, store := range stores {
			assert.Equal(t, "fid:7", store.Creator)
		}
	})

	t.Run("creator matches case-insensitively", func(t *testing.T) {
		stores := directory.List("FID:7", "")
		require.Len(t, stores, 2)
		for _, store := range stores {
			assert.Equal(t, "fid:7", store.Creator)
		}
	})

	t.Run("query matches name case-insensitively", func(t *testing.T) {
		stores := directory.List("", "runners")
		require.Len(t, stores, 1)
		assert.Equal(t, "runners.example", stores[0].Shop)
	})

	t.Run("filters combine", func(t *testing.T) {
		assert.Empty(t, directory.List("fid:21", "runners"))
	})
}

func TestHandleList(t *testing.T) {
	directory, err := NewDirectory()
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(directory).Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/slice/stores?creator=fid:21&search=futbol", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stores []Store
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stores))
	require.Len(t, stores, 1)
	assert.Equal(t, "Futbol Nacional", stores[0].Name)
}
