// file: services/errors.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized means the API rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the API has no such record.
	ErrNotFound = errors.New("not found")
)

// APIError is a failed API call with the best message we could extract.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Message returns the text to show the user for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// extractMessage pulls a readable message out of an error body: message,
// then error, then the first entry of errors, else the status text.
func extractMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
		if list, ok := payload["errors"].([]any); ok && len(list) > 0 {
			switch first := list[0].(type) {
			case string:
				return first
			case map[string]any:
				for _, key := range []string{"message", "msg"} {
					if s, ok := first[key].(string); ok && s != "" {
						return s
					}
				}
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return text
	}
	if status == 0 {
		return "request failed"
	}
	return http.StatusText(status)
}
