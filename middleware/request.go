// file: middleware/request.go
package middleware

import (
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civil-quest-admin/auth"
	"civil-quest-admin/logger"
)

// RequestIDKey is where the request id is stored in the gin context.
const RequestIDKey = "requestID"

// RequestID tags every request with an X-Request-ID, keeping a valid incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)

		start := time.Now()
		c.Next()
		logger.Debug.Printf("[RequestID] %s %s %s -> %d in %v", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// SecurityHeaders forbids framing and MIME sniffing.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// Tracing opens an X-Ray segment per request so outbound API calls nest under it.
func Tracing(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, seg := xray.BeginSegment(c.Request.Context(), name)
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		_ = seg.AddAnnotation("path", c.FullPath())
		_ = seg.AddAnnotation("status", c.Writer.Status())
		if id := c.GetString(RequestIDKey); id != "" {
			_ = seg.AddAnnotation("request_id", id)
		}
		seg.Close(nil)
	}
}

// Locale switches the session locale when ?lang= names a supported one.
func Locale(supported func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if lang := c.Query("lang"); lang != "" && supported(lang) {
			if err := auth.SetLocale(c, lang); err != nil {
				logger.Error.Printf("[Locale] error saving locale: %v", err)
			}
		}
		c.Next()
	}
}
