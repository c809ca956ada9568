// Package controllers renders the dashboard screens and handles their form posts.
// file: controllers/page_controller.go
package controllers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/forms"
	"civil-quest-admin/i18n"
	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/middleware"
	"civil-quest-admin/services"
	"civil-quest-admin/submission"
)

// Page holds what every screen shares: translations, the submission guard
// and the per-session list snapshots.
type Page struct {
	Translator    *i18n.Translator
	Guard         *submission.Guard
	Lists         *listview.Registry
	DefaultLocale string
}

// NewPage creates a Page.
func NewPage(tr *i18n.Translator, guard *submission.Guard, lists *listview.Registry, defaultLocale string) *Page {
	return &Page{Translator: tr, Guard: guard, Lists: lists, DefaultLocale: defaultLocale}
}

// Health answers load balancer checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// menuLink is a sidebar entry ready for the template.
type menuLink struct {
	Label  string
	Path   string
	Active bool
}

// toastView is a toast ready for the template.
type toastView struct {
	Kind    string
	Message string
}

// ------------------ rendering ------------------

func (p *Page) locale(c *gin.Context) string {
	return auth.Locale(c, p.DefaultLocale)
}

// T translates key in the request's locale.
func (p *Page) T(c *gin.Context, key string, data map[string]any) string {
	return p.Translator.T(p.locale(c), key, data)
}

// render adds the layout data (user, menu, toasts, locale) and renders tmpl.
func (p *Page) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	locale := p.locale(c)
	data["Locale"] = locale
	data["Locales"] = p.Translator.Locales()
	data["RequestID"] = c.GetString(middleware.RequestIDKey)

	if claims, ok := auth.FromContext(c); ok {
		data["User"] = claims
		var links []menuLink
		for _, item := range auth.MenuFor(claims.Role) {
			links = append(links, menuLink{
				Label:  p.Translator.T(locale, item.Label, nil),
				Path:   item.Path,
				Active: item.Path == c.Request.URL.Path,
			})
		}
		data["Menu"] = links
	}

	var toasts []toastView
	for _, t := range auth.Toasts(c) {
		toasts = append(toasts, toastView{Kind: t.Kind, Message: p.Translator.T(locale, t.Message, nil)})
	}
	data["Toasts"] = toasts

	c.HTML(status, tmpl, data)
}

// ------------------ toasts & errors ------------------

// success queues "<Entity> <verb>" in the user's language.
func (p *Page) success(c *gin.Context, key, entityKey string) {
	msg := p.T(c, key, map[string]any{"Entity": p.T(c, entityKey, nil)})
	auth.AddToast(c, auth.ToastSuccess, msg)
}

// failure turns err into a toast. A rejected session clears the session and
// redirects to /login; the return value tells the caller a response was written.
func (p *Page) failure(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, submission.ErrInFlight):
		auth.AddToast(c, auth.ToastInfo, "toast.inFlight")
		return false
	case errors.Is(err, services.ErrUnauthorized):
		logger.Warn.Printf("[failure] API rejected session of %s (request %s)", owner(c), c.GetString(middleware.RequestIDKey))
		p.Lists.Drop(owner(c))
		auth.Clear(c)
		if middleware.WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return true
		}
		auth.AddToast(c, auth.ToastError, "toast.sessionExpired")
		c.Redirect(http.StatusSeeOther, "/login")
		return true
	default:
		logger.Error.Printf("[failure] %s %s: %v (request %s)", c.Request.Method, c.Request.URL.Path, err, c.GetString(middleware.RequestIDKey))
		auth.AddToast(c, auth.ToastError, services.Message(err))
		return false
	}
}

// finish answers a list mutation: a redirect back to the list for forms, or
// the reconciled snapshot for scripts.
func (p *Page) finish(c *gin.Context, listPath string, err error, okKey, entityKey string, items any) {
	if err == nil {
		p.success(c, okKey, entityKey)
	} else if p.failure(c, err) {
		return
	}

	if middleware.WantsJSON(c) {
		status := http.StatusOK
		body := gin.H{"ok": err == nil, "items": items}
		if err != nil {
			body["error"] = services.Message(err)
			status = statusFor(err)
		}
		c.JSON(status, body)
		return
	}
	c.Redirect(http.StatusSeeOther, listPath)
}

func statusFor(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, submission.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

// rejectInvalid answers a reject post whose reason failed validation. No
// network call is made.
func rejectInvalid(p *Page, c *gin.Context, form *forms.Form, listPath string) {
	rejectInvalidField(p, c, form, "reason", listPath)
}

// rejectInvalidField answers an inline list post whose field failed validation.
func rejectInvalidField(p *Page, c *gin.Context, form *forms.Form, field, listPath string) {
	msg := form.Error(field)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": form.Errors()})
		return
	}
	auth.AddToast(c, auth.ToastError, msg)
	c.Redirect(http.StatusSeeOther, listPath)
}

// ------------------ session helpers ------------------

func owner(c *gin.Context) string {
	claims, _ := auth.FromContext(c)
	return claims.Subject
}

func token(c *gin.Context) string {
	return auth.TokenFromContext(c)
}

// guardKey scopes a submission to the signed-in user, the list, the action and the record.
func guardKey(c *gin.Context, parts ...string) string {
	return submission.Key(append([]string{owner(c)}, parts...)...)
}

// openList returns the session's collection name, fetching through list with the request token.
func openList[T listview.Keyed](p *Page, c *gin.Context, name string, list func(ctx context.Context, token string) ([]T, error)) *listview.Collection[T] {
	tok := token(c)
	return listview.Open(p.Lists, owner(c), name, func(ctx context.Context) ([]T, error) {
		return list(ctx, tok)
	})
}

// loadList refreshes coll for a page view. A failed fetch leaves the previous
// snapshot on screen with an error toast.
func loadList[T listview.Keyed](p *Page, c *gin.Context, coll *listview.Collection[T], entityKey string) ([]T, bool) {
	if err := coll.Load(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			p.failure(c, err)
			return nil, false
		}
		logger.Error.Printf("[loadList] %s: %v", coll.Name(), err)
		auth.AddToast(c, auth.ToastError, p.T(c, "toast.loadFailed", map[string]any{"Entity": p.T(c, entityKey, nil)}))
	}
	return coll.Items(), true
}

// busyRows marks the ids that have an action of list still in flight.
func (p *Page) busyRows(c *gin.Context, list string, ids []string, actions ...string) map[string]bool {
	busy := map[string]bool{}
	for _, id := range ids {
		for _, a := range actions {
			if p.Guard.InFlight(guardKey(c, list, a, id)) {
				busy[id] = true
			}
		}
	}
	return busy
}

// ------------------ template helpers ------------------

// FuncMap exposes translation and formatting to the templates.
func FuncMap(tr *i18n.Translator) template.FuncMap {
	return template.FuncMap{
		"t": func(locale, key string) string { return tr.T(locale, key, nil) },
		"excerpt": func(html string, n int) string {
			return services.Excerpt(html, n)
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("Jan 2, 2006 3:04 PM")
		},
		"number": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
		// dict builds the argument map of a nested template call.
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
	}
}

// mutate runs one guarded call against coll: patch id, call the API with the
// request token, then re-fetch. The outcome follows the call alone: when only
// the re-fetch fails the submit counts as done and the user is told the list
// may be out of date.
func mutate[T listview.Keyed](p *Page, c *gin.Context, coll *listview.Collection[T], action, id string, patch func(*T), call func(ctx context.Context, tok string) error) error {
	tok := token(c)
	err := p.Guard.Run(c.Request.Context(), guardKey(c, coll.Name(), action, id), func(ctx context.Context) error {
		return coll.Mutate(ctx, id, patch, func(ctx context.Context) error { return call(ctx, tok) })
	})
	if errors.Is(err, listview.ErrRefresh) {
		logger.Warn.Printf("[mutate] %s %s id=%s succeeded; %v (request %s)", coll.Name(), action, id, err, c.GetString(middleware.RequestIDKey))
		auth.AddToast(c, auth.ToastInfo, "toast.stale")
		return nil
	}
	return err
}

// bindForm reads the posted schema fields into form and validates them.
func bindForm(c *gin.Context, form *forms.Form) bool {
	if err := form.Bind(c.Request); err != nil {
		logger.Warn.Printf("[bindForm] bad %s post: %v", form.Schema().Name(), err)
	}
	return form.Validate()
}

func ids[T listview.Keyed](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}
