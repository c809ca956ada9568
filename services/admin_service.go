// file: services/admin_service.go
package services

import (
	"context"
	"net/http"
	"net/url"

	"civil-quest-admin/models"
)

// ---- provincial admins ----

// AdminServiceInterface manages provincial admins.
type AdminServiceInterface interface {
	List(ctx context.Context, token string) ([]models.ProvincialAdmin, error)
	Get(ctx context.Context, token, id string) (models.ProvincialAdmin, error)
	Create(ctx context.Context, token string, fields map[string]any) (models.ProvincialAdmin, error)
	Update(ctx context.Context, token, id string, fields map[string]any) (models.ProvincialAdmin, error)
	Delete(ctx context.Context, token, id string) error
}

// AdminService calls the /admins endpoints.
type AdminService struct {
	client *Client
}

// NewAdminService creates an AdminService.
func NewAdminService(client *Client) *AdminService {
	return &AdminService{client: client}
}

func (s *AdminService) List(ctx context.Context, token string) ([]models.ProvincialAdmin, error) {
	var admins []models.ProvincialAdmin
	if err := s.client.Do(ctx, http.MethodGet, "/admins", token, nil, nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *AdminService) Get(ctx context.Context, token, id string) (models.ProvincialAdmin, error) {
	var a models.ProvincialAdmin
	err := s.client.Do(ctx, http.MethodGet, "/admins/"+url.PathEscape(id), token, nil, nil, &a)
	return a, err
}

func (s *AdminService) Create(ctx context.Context, token string, fields map[string]any) (models.ProvincialAdmin, error) {
	var a models.ProvincialAdmin
	err := s.client.Do(ctx, http.MethodPost, "/admins", token, nil, fields, &a)
	return a, err
}

func (s *AdminService) Update(ctx context.Context, token, id string, fields map[string]any) (models.ProvincialAdmin, error) {
	var a models.ProvincialAdmin
	err := s.client.Do(ctx, http.MethodPut, "/admins/"+url.PathEscape(id), token, nil, fields, &a)
	return a, err
}

func (s *AdminService) Delete(ctx context.Context, token, id string) error {
	return s.client.Do(ctx, http.MethodDelete, "/admins/"+url.PathEscape(id), token, nil, nil, nil)
}

// ---- admin operators ----

// OperatorServiceInterface manages admin operators.
type OperatorServiceInterface interface {
	List(ctx context.Context, token string) ([]models.AdminOperator, error)
	Create(ctx context.Context, token string, fields map[string]any) (models.AdminOperator, error)
	Delete(ctx context.Context, token, id string) error
}

// OperatorService calls the /admin-operators endpoints.
type OperatorService struct {
	client *Client
}

// NewOperatorService creates an OperatorService.
func NewOperatorService(client *Client) *OperatorService {
	return &OperatorService{client: client}
}

func (s *OperatorService) List(ctx context.Context, token string) ([]models.AdminOperator, error) {
	var ops []models.AdminOperator
	if err := s.client.Do(ctx, http.MethodGet, "/admin-operators", token, nil, nil, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (s *OperatorService) Create(ctx context.Context, token string, fields map[string]any) (models.AdminOperator, error) {
	var op models.AdminOperator
	err := s.client.Do(ctx, http.MethodPost, "/admin-operators", token, nil, fields, &op)
	return op, err
}

func (s *OperatorService) Delete(ctx context.Context, token, id string) error {
	return s.client.Do(ctx, http.MethodDelete, "/admin-operators/"+url.PathEscape(id), token, nil, nil, nil)
}
