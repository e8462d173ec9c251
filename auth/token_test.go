package auth_test

import (
	"testing"
	"time"

	"github.com/decoutkhanqindev/motelctl/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	got, ok := auth.TokenExpiry(token)

	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u1"})

	_, ok := auth.TokenExpiry(token)

	assert.False(t, ok)
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	_, ok := auth.TokenExpiry("not-a-jwt")

	assert.False(t, ok)
}
