// file: auth/auth_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civil-quest-admin/models"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("api-side-secret"))
	require.NoError(t, err)
	return s
}

func TestDecode_ValidToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":      "admin@civilquest.ph",
		"role":     "super_admin",
		"name":     "Maria Santos",
		"province": "Cebu",
		"exp":      fixedNow.Add(time.Hour).Unix(),
	})

	claims, err := Decode("Bearer "+token, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "admin@civilquest.ph", claims.Subject)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role, "role is upper-cased")
	assert.Equal(t, "Maria Santos", claims.Name)
	assert.Equal(t, "Cebu", claims.Province)
	assert.False(t, claims.Expired(fixedNow))
}

func TestDecode_SignatureIsNotVerified(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "x", "exp": fixedNow.Add(time.Minute).Unix()})
	tampered := token[:len(token)-4] + "AAAA"

	_, err := Decode(tampered, fixedNow)
	assert.NoError(t, err)
}

func TestDecode_Expired(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "x", "role": "ADMIN_OPERATOR", "exp": fixedNow.Add(-time.Second).Unix()})

	claims, err := Decode(token, fixedNow)

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "x", claims.Subject)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"garbage":     "not.a.jwt",
		"missing exp": signedToken(t, jwt.MapClaims{"sub": "x"}),
		"missing sub": signedToken(t, jwt.MapClaims{"exp": fixedNow.Add(time.Hour).Unix()}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token, fixedNow)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestDecode_RolesListAndNumericID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"id":    float64(42),
		"roles": []any{"PROVINCIAL_ADMIN"},
		"exp":   fixedNow.Add(time.Hour).Unix(),
	})

	claims, err := Decode(token, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, models.RoleProvincialAdmin, claims.Role)
}

func TestMenuFor(t *testing.T) {
	paths := func(items []MenuItem) []string {
		var out []string
		for _, i := range items {
			out = append(out, i.Path)
		}
		return out
	}

	assert.Contains(t, paths(MenuFor(models.RoleSuperAdmin)), "/audit-logs")
	assert.Contains(t, paths(MenuFor(models.RoleProvincialAdmin)), "/operators")
	assert.NotContains(t, paths(MenuFor(models.RoleProvincialAdmin)), "/admins")
	assert.Equal(t, []string{"/", "/events"}, paths(MenuFor(models.RoleAdminOperator)))
	assert.Nil(t, RolesFor("/events"))
	assert.Equal(t, []models.Role{models.RoleSuperAdmin}, RolesFor("/admins"))
}

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))
	return router
}

func TestCurrent_ExpiredTokenResetsSession(t *testing.T) {
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = time.Now })

	expired := signedToken(t, jwt.MapClaims{"sub": "x", "exp": fixedNow.Add(-time.Hour).Unix()})
	router := sessionRouter()
	router.GET("/set", func(c *gin.Context) {
		require.NoError(t, SaveToken(c, expired))
		require.NoError(t, SetLocale(c, "fil"))
		c.Status(http.StatusOK)
	})
	router.GET("/current", func(c *gin.Context) {
		_, _, err := Current(c)
		assert.ErrorIs(t, err, ErrTokenExpired)
		token := sessions.Default(c).Get(tokenKey)
		assert.Nil(t, token, "token is discarded")
		assert.Equal(t, "fil", Locale(c, "en"), "locale survives the reset")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrent_NoToken(t *testing.T) {
	router := sessionRouter()
	router.GET("/current", func(c *gin.Context) {
		_, _, err := Current(c)
		assert.ErrorIs(t, err, ErrMalformedToken)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/current", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
