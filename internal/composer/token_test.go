package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "targetonchain/pkg/domain-errors"
)

func TestCreatorTokenRoundTrip(t *testing.T) {
	key := []byte("signing-key")

	token, err := IssueCreatorToken(key, "fid:42")
	require.NoError(t, err)

	creator, err := ParseCreatorToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "fid:42", creator)
}

func TestCreatorTokenRejectsWrongKey(t *testing.T) {
	token, err := IssueCreatorToken([]byte("right-key"), "fid:42")
	require.NoError(t, err)

	_, err = ParseCreatorToken([]byte("wrong-key"), token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestCreatorTokenRejectsGarbage(t *testing.T) {
	_, err := ParseCreatorToken([]byte("key"), "not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
