// file: auth/toast.go
package auth

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"civil-quest-admin/logger"
)

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is a one-shot notification shown on the next rendered page.
// Message is an i18n message id or literal text from the API.
type Toast struct {
	Kind    string
	Message string
}

// AddToast queues a toast in the session flashes.
func AddToast(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(kind + "|" + message)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[auth.AddToast] error saving session: %v", err)
	}
}

// Toasts drains the queued toasts.
func Toasts(c *gin.Context) []Toast {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		logger.Error.Printf("[auth.Toasts] error saving session: %v", err)
	}

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = ToastInfo, s
		}
		out = append(out, Toast{Kind: kind, Message: msg})
	}
	return out
}
