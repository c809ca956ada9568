// file: controllers/test_helpers.go
package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"civil-quest-admin/auth"
	"civil-quest-admin/i18n"
	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/models"
	"civil-quest-admin/services"
	"civil-quest-admin/submission"
	"civil-quest-admin/websocket"
)

const testSession = "testsession"

// setupTestRouter creates a new Gin engine with session middleware and fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(testSession, store))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes one minimal template per screen. Each prints the
// screen name, its toasts and its form errors so tests can assert on them.
func createDummyTemplates(dir string) error {
	const common = `{{range .Toasts}}[{{.Kind}}] {{.Message}};{{end}}` +
		`{{with .Form}}{{if .HasErrors}}<invalid> {{end}}{{range $k, $v := .Errors}}{{$k}}: {{$v}};{{end}}{{end}}`
	templates := map[string]string{
		"login.html":            `login `,
		"dashboard.html":        `dashboard {{if .Loaded}}events={{.Summary.TotalEvents}}{{end}} `,
		"events.html":           `events {{range .Events}}{{.ID}}={{.Status}} {{end}}`,
		"event_form.html":       `event form {{.Action}} `,
		"admins.html":           `admins {{range .Admins}}{{.ID}}={{.FullName}} {{end}}`,
		"admin_form.html":       `admin form {{.Action}} {{with .Form}}{{.Value "fullName"}}{{end}} `,
		"operators.html":        `operators {{range .Operators}}{{.ID}} {{end}}`,
		"operator_form.html":    `operator form `,
		"sponsorships.html":     `sponsorships {{range .Sponsorships}}{{.ID}}={{.Status}} {{end}}`,
		"sponsorship_form.html": `sponsorship form {{range .Events}}{{.ID}} {{end}}`,
		"premium.html":          `premium {{range .Requests}}{{.ID}}={{.Status}} {{end}}`,
		"points.html":           `points {{range .Configs}}{{.Activity}}={{.Points}} {{end}}`,
		"users.html":            `users {{range .Users}}{{.Email}} {{end}}`,
		"audit.html":            `audit {{range .Logs}}{{.Action}} {{end}}`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content+common), 0644); err != nil {
			return err
		}
	}
	return nil
}

// testApp is the full route table wired to mocks.
type testApp struct {
	router       *gin.Engine
	page         *Page
	auth         *services.MockAuthService
	events       *services.MockEventService
	admins       *services.MockAdminService
	operators    *services.MockOperatorService
	sponsorships *services.MockSponsorshipService
	premium      *services.MockPremiumService
	points       *services.MockPointsService
	analytics    *services.MockAnalyticsService
	audit        *services.MockAuditService
	users        *services.MockUserService
	geocoder     *services.MockGeocoder
}

func newTestApp(t *testing.T) *testApp {
	router := setupTestRouter(t)
	a := &testApp{
		router:       router,
		page:         NewPage(i18n.NewTranslator("en"), submission.NewGuard(), listview.NewRegistry(time.Hour), "en"),
		auth:         new(services.MockAuthService),
		events:       new(services.MockEventService),
		admins:       new(services.MockAdminService),
		operators:    new(services.MockOperatorService),
		sponsorships: new(services.MockSponsorshipService),
		premium:      new(services.MockPremiumService),
		points:       new(services.MockPointsService),
		analytics:    new(services.MockAnalyticsService),
		audit:        new(services.MockAuditService),
		users:        new(services.MockUserService),
		geocoder:     new(services.MockGeocoder),
	}

	// Helper route for planting a token in the session.
	router.GET("/test/session", func(c *gin.Context) {
		if err := auth.SaveToken(c, c.Query("token")); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	RegisterRoutes(router, Controllers{
		Auth:         NewAuthController(a.page, a.auth),
		Dashboard:    NewDashboardController(a.page, a.analytics),
		Events:       NewEventController(a.page, a.events, "civilquest://events"),
		Admins:       NewAdminController(a.page, a.admins),
		Operators:    NewOperatorController(a.page, a.operators),
		Sponsorships: NewSponsorshipController(a.page, a.sponsorships, a.events),
		Premium:      NewPremiumController(a.page, a.premium),
		Points:       NewPointsController(a.page, a.points),
		Users:        NewUserController(a.page, a.users),
		Audit:        NewAuditController(a.page, a.audit),
		API:          NewAPIController(a.page, a.geocoder, websocket.NewHub("http://localhost:8080")),
	})
	return a
}

// testToken returns an API token for subject with role. The dashboard never
// checks the signature, so any key works.
func testToken(t *testing.T, subject string, role models.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"name": "Test Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("api-side-secret"))
	require.NoError(t, err)
	return tok
}

// signIn returns a session cookie holding a token for role.
func (a *testApp) signIn(t *testing.T, role models.Role) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test/session?token="+url.QueryEscape(testToken(t, "admin-1", role)), nil)
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(w)
	require.NotNil(t, c)
	return c
}

// sessionCookie extracts the session cookie from a response.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testSession {
			return c
		}
	}
	return nil
}

// request performs one call. form, when given, is sent url-encoded. asJSON
// marks the call as coming from a page script.
func (a *testApp) request(method, path string, form url.Values, cookie *http.Cookie, asJSON bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// follow fetches path with the cookie a redirect response carried, so flashed
// toasts render.
func (a *testApp) follow(w *httptest.ResponseRecorder, fallback *http.Cookie, path string) *httptest.ResponseRecorder {
	c := sessionCookie(w)
	if c == nil {
		c = fallback
	}
	return a.request(http.MethodGet, path, nil, c, false)
}
