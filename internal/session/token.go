package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenValid reports whether an access token is present and not past its exp
// claim. The signature is not checked; the backend remains the authority. Tokens that
// are not JWTs, or carry no exp, count as valid while present.
func (m *Manager) AccessTokenValid() bool {
	token := m.AccessToken()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return m.timeNow().Before(exp.Time)
}
