package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := Issue(42, "a@x.com", testSecret, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
	require.NotNil(t, claims.IssuedAt)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(1, "a@x.com", testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token, []byte("a-different-secret"))
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	token, err := Issue(1, "a@x.com", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "two segments", token: "aaaa.bbbb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := Parse(tt.token, testSecret)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeUnverified(t *testing.T) {
	t.Parallel()

	token, err := Issue(7, "b@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	// no secret needed, the signature is not checked
	claims := DecodeUnverified(token)
	require.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "b@x.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)

	assert.Nil(t, DecodeUnverified("not-a-jwt"))
	assert.Nil(t, DecodeUnverified(""))
}
