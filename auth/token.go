package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the bearer token as an unverified JWT and returns its
// expiry claim. The token is opaque to the session protocol (expiry is only
// ever learned from a 401), so this is purely informational for status
// display; ok is false when the token is not a JWT or has no exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
