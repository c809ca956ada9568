// file: auth/session.go
package auth

import (
	"errors"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"civil-quest-admin/logger"
)

// session keys
const (
	tokenKey  = "token"
	localeKey = "locale"
	// ClaimsKey is where AuthRequired stores the decoded claims in the gin context.
	ClaimsKey = "claims"
	// TokenKey is where AuthRequired stores the raw token in the gin context.
	TokenKey = "token"
)

// now is swapped by tests.
var now = time.Now

// SaveToken stores the API token in the session cookie.
func SaveToken(c *gin.Context, token string) error {
	session := sessions.Default(c)
	session.Set(tokenKey, token)
	return session.Save()
}

// Current decodes the session's token. A missing, malformed or expired token
// resets the session to unauthenticated.
func Current(c *gin.Context) (Claims, string, error) {
	session := sessions.Default(c)
	token, _ := session.Get(tokenKey).(string)
	if token == "" {
		return Claims{}, "", ErrMalformedToken
	}

	claims, err := Decode(token, now())
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			logger.Info.Printf("[auth.Current] token for %s expired at %v; resetting session", claims.Subject, claims.ExpiresAt)
		} else {
			logger.Warn.Printf("[auth.Current] discarding undecodable token: %v", err)
		}
		Clear(c)
		return Claims{}, "", err
	}
	return claims, token, nil
}

// Clear drops the token and everything else in the session except the locale.
func Clear(c *gin.Context) {
	session := sessions.Default(c)
	locale, _ := session.Get(localeKey).(string)
	session.Clear()
	if locale != "" {
		session.Set(localeKey, locale)
	}
	if err := session.Save(); err != nil {
		logger.Error.Printf("[auth.Clear] error saving session: %v", err)
	}
}

// FromContext returns the claims AuthRequired stored on the request.
func FromContext(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// TokenFromContext returns the raw token AuthRequired stored on the request.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(TokenKey)
}

// Locale returns the locale chosen for this session, or def.
func Locale(c *gin.Context, def string) string {
	if l, ok := sessions.Default(c).Get(localeKey).(string); ok && l != "" {
		return l
	}
	return def
}

// SetLocale remembers the locale for this session.
func SetLocale(c *gin.Context, locale string) error {
	session := sessions.Default(c)
	session.Set(localeKey, locale)
	return session.Save()
}
