package farcaster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "targetonchain/pkg/domain-errors"
)

func TestNeynarValidate(t *testing.T) {
	frameReq := FrameRequest{TrustedData: TrustedData{MessageBytes: "0xsigned"}}

	t.Run("returns the verified message on a positive verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "test-key", r.Header.Get("api_key"))

			var got FrameRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "0xsigned", got.TrustedData.MessageBytes)

			_ = json.NewEncoder(w).Encode(validationResponse{
				IsValid: true,
				Message: &Message{Interactor: Interactor{FID: 7, VerifiedAccounts: []string{"0xwallet"}}},
			})
		}))
		defer server.Close()

		client := NewNeynar("test-key", WithValidationURL(server.URL))
		msg, ok, err := client.Validate(context.Background(), frameReq)

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "0xwallet", msg.Address())
	})

	t.Run("negative verdict is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(validationResponse{IsValid: false})
		}))
		defer server.Close()

		client := NewNeynar("test-key", WithValidationURL(server.URL))
		msg, ok, err := client.Validate(context.Background(), frameReq)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, msg)
	})

	t.Run("non-200 is an upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewNeynar("test-key", WithValidationURL(server.URL))
		_, _, err := client.Validate(context.Background(), frameReq)

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable))
	})

	t.Run("malformed body is an upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewNeynar("test-key", WithValidationURL(server.URL))
		_, _, err := client.Validate(context.Background(), frameReq)

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable))
	})
}
