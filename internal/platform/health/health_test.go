package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) HealthCheck(context.Context) error {
	return p.err
}

func probe(h *Handler, path string) int {
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestProbes(t *testing.T) {
	t.Run("live is always ok", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, probe(NewHandler(), "/healthz"))
	})

	t.Run("ready without a database is ok", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, probe(NewHandler(), "/readyz"))
	})

	t.Run("ready checks the database", func(t *testing.T) {
		assert.Equal(t, http.StatusOK,
			probe(NewHandler(WithDatabase(stubPinger{})), "/readyz"))
		assert.Equal(t, http.StatusServiceUnavailable,
			probe(NewHandler(WithDatabase(stubPinger{err: errors.New("down")})), "/readyz"))
	})
}
