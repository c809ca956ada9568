// file: services/api_client_test.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civil-quest-admin/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"status":true,"message":"ok","data":[{"id":"e1","eventName":"Coastal Cleanup","status":"PENDING"}]}`)
	})

	events, err := NewEventService(client).List(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Coastal Cleanup", events[0].EventName)
	assert.Equal(t, models.StatusPending, events[0].Status)
}

func TestClient_BareBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"p1","activity":"attend","points":10}]`)
	})

	points, err := NewPointsService(client).List(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, []models.PointsConfig{{ID: "p1", Activity: "attend", Points: 10}}, points)
}

func TestClient_FalseStatusIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":false,"message":"Event already approved"}`)
	})

	err := NewEventService(client).Approve(context.Background(), "tok", "e1")

	require.Error(t, err)
	assert.Equal(t, "Event already approved", Message(err))
}

func TestClient_ErrorMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
		is     error
	}{
		{"message field", http.StatusBadRequest, `{"message":"Invalid province"}`, "Invalid province", nil},
		{"error field", http.StatusConflict, `{"error":"Email taken"}`, "Email taken", nil},
		{"errors list", http.StatusUnprocessableEntity, `{"errors":[{"msg":"points must be > 0"}]}`, "points must be > 0", nil},
		{"status text", http.StatusInternalServerError, ``, "Internal Server Error", nil},
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, "jwt expired", ErrUnauthorized},
		{"not found", http.StatusNotFound, `<html>nope</html>`, "Not Found", ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			err := NewEventService(client).Delete(context.Background(), "tok", "e1")

			require.Error(t, err)
			assert.Equal(t, tc.want, Message(err))
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second)

	_, err := NewAuditService(client).List(context.Background(), "tok")

	require.Error(t, err)
	assert.Contains(t, Message(err), "could not be reached")
}

func TestEventService_RejectSendsReason(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/events/e%201/reject", r.URL.EscapedPath())
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Duplicate submission", body["reason"])
		_, _ = io.WriteString(w, `{"status":true}`)
	})

	err := NewEventService(client).Reject(context.Background(), "tok", "e 1", "Duplicate submission")
	assert.NoError(t, err)
}

func TestEventService_CreateJSONNestsLocation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		loc, ok := body["location"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Plaza Independencia", loc["address"])
		assert.Equal(t, 10.29, loc["latitude"])
		assert.NotContains(t, body, "address")
		_, _ = io.WriteString(w, `{"status":true,"data":{"id":"e9","eventName":"Tree Planting"}}`)
	})

	ev, err := NewEventService(client).Create(context.Background(), "tok", map[string]any{
		"eventName": "Tree Planting",
		"address":   "Plaza Independencia",
		"latitude":  10.29,
		"longitude": 123.9,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "e9", ev.ID)
}

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestEventService_CreateWithImageUploadsMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Tree Planting", r.FormValue("eventName"))
		assert.Equal(t, "25", r.FormValue("points"))
		assert.JSONEq(t, `{"address":"Plaza","latitude":10.5,"longitude":123}`, r.FormValue("location"))

		f, h, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		assert.True(t, strings.HasSuffix(h.Filename, ".png"))
		assert.NotEqual(t, "banner.PNG", h.Filename, "uploads are renamed")
		data, _ := io.ReadAll(f)
		assert.Equal(t, []byte("png-bytes"), data)
		_, _ = io.WriteString(w, `{"status":true,"data":{"id":"e10"}}`)
	})

	img := fileHeader(t, "image", "banner.PNG", []byte("png-bytes"))
	ev, err := NewEventService(client).Create(context.Background(), "tok", map[string]any{
		"eventName": "Tree Planting",
		"points":    float64(25),
		"address":   "Plaza",
		"latitude":  10.5,
		"longitude": float64(123),
	}, img)

	require.NoError(t, err)
	assert.Equal(t, "e10", ev.ID)
}

func TestAuthService_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"status":true,"data":{"accessToken":"jwt-value"}}`)
	})

	token, err := NewAuthService(client).Login(context.Background(), " admin@civilquest.ph ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "jwt-value", token)
}

func TestAuthService_LoginWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":true,"data":{}}`)
	})

	_, err := NewAuthService(client).Login(context.Background(), "a@b.c", "x")
	assert.Error(t, err)
}

func TestUserService_SearchQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/search", r.URL.Path)
		assert.Equal(t, "juan", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"status":true,"data":[{"id":"u1","fullName":"Juan Dela Cruz","premium":true}]}`)
	})

	users, err := NewUserService(client).Search(context.Background(), "tok", "  juan ")

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Premium)
}

func TestReviewServices_Paths(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		_, _ = io.WriteString(w, `{"status":true}`)
	})
	ctx := context.Background()

	require.NoError(t, NewSponsorshipService(client).Approve(ctx, "tok", "s1"))
	require.NoError(t, NewPremiumService(client).Reject(ctx, "tok", "p1", ""))
	require.NoError(t, NewPointsService(client).Update(ctx, "tok", "pt1", 15))
	require.NoError(t, NewOperatorService(client).Delete(ctx, "tok", "o1"))

	assert.Equal(t, []string{
		"PATCH /sponsorships/s1/approve",
		"PATCH /premium-requests/p1/reject",
		"PUT /points/pt1",
		"DELETE /admin-operators/o1",
	}, seen)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":true}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewEventService(client).End(ctx, "tok", "e1")
	assert.Error(t, err)
}
