package composer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"targetonchain/internal/farcaster"
)

const testBaseURL = "https://frames.example"

var testSigningKey = []byte("test-signing-key")

type stubValidator struct {
	msg *farcaster.Message
	ok  bool
	err error
}

func (v *stubValidator) Validate(context.Context, farcaster.FrameRequest) (*farcaster.Message, bool, error) {
	return v.msg, v.ok, v.err
}

func newRouter(v farcaster.Validator) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(testBaseURL, testSigningKey, v).Register(r)
	return r
}

func TestHandleMetadata(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubValidator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/composer", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Type   string `json:"type"`
		Name   string `json:"name"`
		Action struct {
			Type string `json:"type"`
		} `json:"action"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meta))
	assert.Equal(t, "composer", meta.Type)
	assert.Equal(t, "Target Onchain", meta.Name)
	assert.Equal(t, "post", meta.Action.Type)
}

func postAction(t *testing.T, router *chi.Mux) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(farcaster.FrameRequest{
		TrustedData: farcaster.TrustedData{MessageBytes: "0xsigned"},
	})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/composer", bytes.NewReader(body)))
	return rec
}

func TestHandleAction(t *testing.T) {
	t.Run("answers with a form url carrying a creator token", func(t *testing.T) {
		router := newRouter(&stubValidator{
			msg: &farcaster.Message{Interactor: farcaster.Interactor{FID: 7}},
			ok:  true,
		})

		rec := postAction(t, router)
		require.Equal(t, http.StatusOK, rec.Code)

		var form struct {
			Type  string `json:"type"`
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&form))
		assert.Equal(t, "form", form.Type)

		parsed, err := url.Parse(form.URL)
		require.NoError(t, err)
		creator, err := ParseCreatorToken(testSigningKey, parsed.Query().Get("token"))
		require.NoError(t, err)
		assert.Equal(t, "fid:7", creator)
	})

	t.Run("rejects an invalid signature", func(t *testing.T) {
		rec := postAction(t, newRouter(&stubValidator{ok: false}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
