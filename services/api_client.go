// Package services wraps the Civil Quest REST API, the geocoding lookup and
// the small helpers screens need (QR codes, description excerpts).
// file: services/api_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/google/uuid"

	"civil-quest-admin/logger"
)

const maxResponseBytes = 8 << 20

// Client talks JSON to the Civil Quest API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracing records every outbound call as an X-Ray subsegment.
func WithTracing() Option {
	return func(c *Client) { c.httpClient = xray.Client(c.httpClient) }
}

// WithUserAgent sets the User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the {status, message, data} wrapper most endpoints answer with.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do sends body as JSON and decodes the response into out.
func (c *Client) Do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, token, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// Upload sends fields and an optional file as multipart form data.
func (c *Client) Upload(ctx context.Context, method, path, token string, fields map[string]any, fileField string, file *multipart.FileHeader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, v := range fields {
		if v == nil {
			continue
		}
		if err := mw.WriteField(name, formValue(v)); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if file != nil {
		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer src.Close()

		part, err := mw.CreateFormFile(fileField, uploadName(file.Filename))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, src); err != nil {
			return fmt.Errorf("copy upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, token, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error.Printf("[Client.send] %s %s failed: %v", req.Method, req.URL.Path, err)
		return &APIError{Message: "The server could not be reached. Please try again."}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}
	logger.Debug.Printf("[Client.send] %s %s -> %d in %v", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: extractMessage(resp.StatusCode, body)}
	}
	return decodeBody(body, out)
}

// decodeBody unwraps the envelope when present. A false status is an error
// even on a 2xx response.
func decodeBody(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Status != nil {
			if !*env.Status {
				msg := env.Message
				if msg == "" {
					msg = "The request was not accepted"
				}
				return &APIError{Status: http.StatusOK, Message: msg}
			}
			if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
				return nil
			}
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("decode data: %w", err)
			}
			return nil
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// uploadName gives uploads a collision-free name that keeps the extension.
func uploadName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}
