package api

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpiry extracts the expiry claim from a bearer token without
// verifying its signature. Presence of a token never implies validity;
// this is for logging only, every resolution still goes to the backend.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
