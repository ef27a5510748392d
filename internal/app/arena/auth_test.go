package arena

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(secret string) *Server {
	return newServer(Config{
		Port:        "3001",
		AuthEnabled: true,
		AuthSecret:  secret,
	})
}

func TestGuestTokenRoundTrip(t *testing.T) {
	srv := authServer("s3cret")
	playerId, token, err := srv.issueGuestToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := srv.validateGuestToken(token)
	require.NoError(t, err)
	assert.Equal(t, playerId, got)
}

func TestGuestTokenWrongSecretRejected(t *testing.T) {
	srv := authServer("s3cret")
	_, token, err := srv.issueGuestToken()
	require.NoError(t, err)

	other := authServer("different")
	_, err = other.validateGuestToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthDisabledAssignsAnonymousIds(t *testing.T) {
	srv := testServer()
	r := httptest.NewRequest("GET", "/arena", nil)

	first, err := srv.auth(r)
	require.NoError(t, err)
	second, err := srv.auth(r)
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestAuthEnabledRequiresToken(t *testing.T) {
	srv := authServer("s3cret")

	r := httptest.NewRequest("GET", "/arena", nil)
	_, err := srv.auth(r)
	assert.ErrorIs(t, err, ErrNoToken)

	_, token, err := srv.issueGuestToken()
	require.NoError(t, err)
	r = httptest.NewRequest("GET", "/arena?token="+token, nil)
	playerId, err := srv.auth(r)
	require.NoError(t, err)
	assert.NotEmpty(t, playerId)
}
