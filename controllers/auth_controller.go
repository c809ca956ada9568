// Package controllers controllers/auth_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/forms"
	"civil-quest-admin/logger"
	"civil-quest-admin/services"
)

// AuthController signs admins in and out.
type AuthController struct {
	*Page
	AuthService services.AuthServiceInterface
}

// NewAuthController creates an AuthController.
func NewAuthController(page *Page, authService services.AuthServiceInterface) *AuthController {
	return &AuthController{Page: page, AuthService: authService}
}

// ShowLoginPage renders the sign-in form, or goes home when a valid session exists.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	if _, _, err := auth.Current(c); err == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ac.render(c, http.StatusOK, "login.html", gin.H{"Form": forms.New(forms.Login, nil)})
}

// PerformLogin validates the form, exchanges credentials for a token and
// stores it in the session.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	form := forms.New(forms.Login, nil)
	if err := form.Bind(c.Request); err != nil {
		logger.Warn.Printf("[PerformLogin] bad form post: %v", err)
	}
	if !form.Validate() {
		ac.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{"Form": form})
		return
	}

	email := form.Value("email")
	var tok string
	err := ac.Guard.Run(c.Request.Context(), guardKey(c, "login", email), func(ctx context.Context) error {
		var err error
		tok, err = ac.AuthService.Login(ctx, email, form.Value("password"))
		return err
	})
	if err != nil {
		logger.Warn.Printf("[PerformLogin] login failed for %s: %v", email, err)
		auth.AddToast(c, auth.ToastError, services.Message(err))
		ac.render(c, statusFor(err), "login.html", gin.H{"Form": form})
		return
	}

	claims, err := auth.Decode(tok, time.Now())
	if err != nil || !claims.Role.Valid() {
		logger.Warn.Printf("[PerformLogin] unusable token for %s: role=%q err=%v", email, claims.Role, err)
		key, status := "toast.forbidden", http.StatusForbidden
		if errors.Is(err, auth.ErrMalformedToken) || errors.Is(err, auth.ErrTokenExpired) {
			key, status = "toast.loginFailed", http.StatusBadGateway
		}
		auth.AddToast(c, auth.ToastError, key)
		ac.render(c, status, "login.html", gin.H{"Form": form})
		return
	}

	if err := auth.SaveToken(c, tok); err != nil {
		logger.Error.Printf("[PerformLogin] failed to save session: %v", err)
		auth.AddToast(c, auth.ToastError, "toast.loginFailed")
		ac.render(c, http.StatusInternalServerError, "login.html", gin.H{"Form": form})
		return
	}
	logger.Info.Printf("[PerformLogin] %s signed in as %s", claims.Subject, claims.Role)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout drops the session's snapshots and token, keeping only the locale.
func (ac *AuthController) Logout(c *gin.Context) {
	if claims, _, err := auth.Current(c); err == nil {
		ac.Lists.Drop(claims.Subject)
		logger.Info.Printf("[Logout] %s signed out", claims.Subject)
	}
	auth.Clear(c)
	auth.AddToast(c, auth.ToastInfo, "toast.loggedOut")
	c.Redirect(http.StatusFound, "/login")
}

// DashboardController renders the analytics summary.
type DashboardController struct {
	*Page
	Analytics services.AnalyticsServiceInterface
}

// NewDashboardController creates a DashboardController.
func NewDashboardController(page *Page, analytics services.AnalyticsServiceInterface) *DashboardController {
	return &DashboardController{Page: page, Analytics: analytics}
}

// Index shows the totals. A failed fetch still renders the page with a toast.
func (dc *DashboardController) Index(c *gin.Context) {
	summary, err := dc.Analytics.Summary(c.Request.Context(), token(c))
	if err != nil && dc.failure(c, err) {
		return
	}
	dc.render(c, http.StatusOK, "dashboard.html", gin.H{"Summary": summary, "Loaded": err == nil})
}
