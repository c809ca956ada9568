// file: services/review_service.go
package services

import (
	"context"
	"net/http"
	"net/url"

	"civil-quest-admin/models"
)

// Sponsorships and premium requests share the approve/reject review flow.

type reviewer struct {
	client *Client
	base   string
}

func (r reviewer) approve(ctx context.Context, token, id string) error {
	return r.client.Do(ctx, http.MethodPatch, r.base+"/"+url.PathEscape(id)+"/approve", token, nil, nil, nil)
}

func (r reviewer) reject(ctx context.Context, token, id, reason string) error {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return r.client.Do(ctx, http.MethodPatch, r.base+"/"+url.PathEscape(id)+"/reject", token, nil, body, nil)
}

// ---- sponsorships ----

// SponsorshipServiceInterface reviews sponsorship pledges.
type SponsorshipServiceInterface interface {
	List(ctx context.Context, token string) ([]models.Sponsor, error)
	Create(ctx context.Context, token string, fields map[string]any) (models.Sponsor, error)
	Approve(ctx context.Context, token, id string) error
	Reject(ctx context.Context, token, id, reason string) error
}

// SponsorshipService calls the /sponsorships endpoints.
type SponsorshipService struct {
	reviewer
}

// NewSponsorshipService creates a SponsorshipService.
func NewSponsorshipService(client *Client) *SponsorshipService {
	return &SponsorshipService{reviewer{client: client, base: "/sponsorships"}}
}

func (s *SponsorshipService) List(ctx context.Context, token string) ([]models.Sponsor, error) {
	var out []models.Sponsor
	if err := s.client.Do(ctx, http.MethodGet, s.base, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create records a pledge on behalf of a sponsor.
func (s *SponsorshipService) Create(ctx context.Context, token string, fields map[string]any) (models.Sponsor, error) {
	var out models.Sponsor
	err := s.client.Do(ctx, http.MethodPost, s.base, token, nil, fields, &out)
	return out, err
}

func (s *SponsorshipService) Approve(ctx context.Context, token, id string) error {
	return s.approve(ctx, token, id)
}

func (s *SponsorshipService) Reject(ctx context.Context, token, id, reason string) error {
	return s.reject(ctx, token, id, reason)
}

// ---- premium requests ----

// PremiumServiceInterface reviews premium upgrade requests.
type PremiumServiceInterface interface {
	List(ctx context.Context, token string) ([]models.PremiumUserRequest, error)
	Approve(ctx context.Context, token, id string) error
	Reject(ctx context.Context, token, id, reason string) error
}

// PremiumService calls the /premium-requests endpoints.
type PremiumService struct {
	reviewer
}

// NewPremiumService creates a PremiumService.
func NewPremiumService(client *Client) *PremiumService {
	return &PremiumService{reviewer{client: client, base: "/premium-requests"}}
}

func (s *PremiumService) List(ctx context.Context, token string) ([]models.PremiumUserRequest, error) {
	var out []models.PremiumUserRequest
	if err := s.client.Do(ctx, http.MethodGet, s.base, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PremiumService) Approve(ctx context.Context, token, id string) error {
	return s.approve(ctx, token, id)
}

func (s *PremiumService) Reject(ctx context.Context, token, id, reason string) error {
	return s.reject(ctx, token, id, reason)
}
