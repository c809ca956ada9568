// Package auth decodes the session token and derives what the dashboard shows
// for its role. Nothing here is a security boundary: the token is decoded
// without signature verification and the API enforces authorization.
// file: auth/token.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"civil-quest-admin/models"
)

var (
	// ErrMalformedToken is returned for tokens that cannot be decoded.
	ErrMalformedToken = errors.New("malformed session token")
	// ErrTokenExpired is returned once the token's expiry has passed.
	ErrTokenExpired = errors.New("session token expired")
)

// Claims are the parts of the token the UI uses.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Role      models.Role
	Province  string
	ExpiresAt time.Time
}

// Expired reports whether the claims are past their expiry at now.
func (c Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Decode reads the token without verifying its signature and checks expiry.
func Decode(token string, now time.Time) (Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Claims{}, ErrMalformedToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	c := Claims{
		Subject:   firstString(mc, "sub", "email", "id", "userId"),
		Email:     firstString(mc, "email", "sub"),
		Name:      firstString(mc, "name", "fullName"),
		Role:      models.Role(strings.ToUpper(roleClaim(mc))),
		Province:  firstString(mc, "province"),
		ExpiresAt: exp.Time,
	}
	if c.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	if c.Expired(now) {
		return c, ErrTokenExpired
	}
	return c, nil
}

func firstString(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := mc[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// roleClaim accepts "role" as a string or "roles" as a list.
func roleClaim(mc jwt.MapClaims) string {
	if r := firstString(mc, "role"); r != "" {
		return r
	}
	if list, ok := mc["roles"].([]any); ok && len(list) > 0 {
		if r, ok := list[0].(string); ok {
			return r
		}
	}
	return ""
}
