// file: services/insight_service.go
package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"civil-quest-admin/models"
)

// ---- auth ----

// AuthServiceInterface exchanges credentials for an API token.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthService calls the admin login endpoint.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login returns the token the API issued for the credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	if err := s.client.Do(ctx, http.MethodPost, "/auth/admin/login", "", nil, body, &out); err != nil {
		return "", err
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	if token == "" {
		return "", errors.New("login response carried no token")
	}
	return token, nil
}

// ---- points ----

// PointsServiceInterface reads and edits the points table.
type PointsServiceInterface interface {
	List(ctx context.Context, token string) ([]models.PointsConfig, error)
	Update(ctx context.Context, token, id string, points float64) error
}

// PointsService calls the /points endpoints.
type PointsService struct {
	client *Client
}

// NewPointsService creates a PointsService.
func NewPointsService(client *Client) *PointsService {
	return &PointsService{client: client}
}

func (s *PointsService) List(ctx context.Context, token string) ([]models.PointsConfig, error) {
	var out []models.PointsConfig
	if err := s.client.Do(ctx, http.MethodGet, "/points", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PointsService) Update(ctx context.Context, token, id string, points float64) error {
	return s.client.Do(ctx, http.MethodPut, "/points/"+url.PathEscape(id), token, nil, map[string]float64{"points": points}, nil)
}

// ---- analytics ----

// AnalyticsServiceInterface fetches the dashboard summary.
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, token string) (models.Analytics, error)
}

// AnalyticsService calls the /analytics endpoint.
type AnalyticsService struct {
	client *Client
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(client *Client) *AnalyticsService {
	return &AnalyticsService{client: client}
}

func (s *AnalyticsService) Summary(ctx context.Context, token string) (models.Analytics, error) {
	var out models.Analytics
	err := s.client.Do(ctx, http.MethodGet, "/analytics/summary", token, nil, nil, &out)
	return out, err
}

// ---- audit ----

// AuditServiceInterface lists recorded admin actions.
type AuditServiceInterface interface {
	List(ctx context.Context, token string) ([]models.AuditLog, error)
}

// AuditService calls the /audit-logs endpoint.
type AuditService struct {
	client *Client
}

// NewAuditService creates an AuditService.
func NewAuditService(client *Client) *AuditService {
	return &AuditService{client: client}
}

func (s *AuditService) List(ctx context.Context, token string) ([]models.AuditLog, error) {
	var out []models.AuditLog
	if err := s.client.Do(ctx, http.MethodGet, "/audit-logs", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- users ----

// UserServiceInterface searches mobile-app users.
type UserServiceInterface interface {
	Search(ctx context.Context, token, query string) ([]models.User, error)
}

// UserService calls the /users/search endpoint.
type UserService struct {
	client *Client
}

// NewUserService creates a UserService.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) Search(ctx context.Context, token, query string) ([]models.User, error) {
	var out []models.User
	q := url.Values{"q": {strings.TrimSpace(query)}}
	if err := s.client.Do(ctx, http.MethodGet, "/users/search", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
