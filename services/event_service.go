// file: services/event_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"civil-quest-admin/logger"
	"civil-quest-admin/models"
)

// EventServiceInterface is everything the event screens need from the API.
type EventServiceInterface interface {
	List(ctx context.Context, token string) ([]models.Event, error)
	Get(ctx context.Context, token, id string) (models.Event, error)
	Create(ctx context.Context, token string, fields map[string]any, image *multipart.FileHeader) (models.Event, error)
	Update(ctx context.Context, token, id string, fields map[string]any, image *multipart.FileHeader) (models.Event, error)
	Approve(ctx context.Context, token, id string) error
	Reject(ctx context.Context, token, id, reason string) error
	End(ctx context.Context, token, id string) error
	Delete(ctx context.Context, token, id string) error
}

// EventService calls the /events endpoints.
type EventService struct {
	client *Client
}

// NewEventService creates an EventService.
func NewEventService(client *Client) *EventService {
	return &EventService{client: client}
}

func eventPath(id string, action ...string) string {
	p := "/events/" + url.PathEscape(id)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

// List returns every event visible to the token's holder.
func (s *EventService) List(ctx context.Context, token string) ([]models.Event, error) {
	var events []models.Event
	if err := s.client.Do(ctx, http.MethodGet, "/events", token, nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches one event.
func (s *EventService) Get(ctx context.Context, token, id string) (models.Event, error) {
	var ev models.Event
	err := s.client.Do(ctx, http.MethodGet, eventPath(id), token, nil, nil, &ev)
	return ev, err
}

// Create submits a new event. With an image the request goes out as multipart.
func (s *EventService) Create(ctx context.Context, token string, fields map[string]any, image *multipart.FileHeader) (models.Event, error) {
	return s.save(ctx, http.MethodPost, "/events", token, fields, image)
}

// Update replaces an existing event's fields.
func (s *EventService) Update(ctx context.Context, token, id string, fields map[string]any, image *multipart.FileHeader) (models.Event, error) {
	return s.save(ctx, http.MethodPut, eventPath(id), token, fields, image)
}

func (s *EventService) save(ctx context.Context, method, path, token string, fields map[string]any, image *multipart.FileHeader) (models.Event, error) {
	var ev models.Event
	body := eventBody(fields)
	if image == nil {
		err := s.client.Do(ctx, method, path, token, nil, body, &ev)
		return ev, err
	}

	// multipart cannot nest, so the location travels as a JSON string
	if nested, ok := body["location"]; ok {
		loc, err := json.Marshal(nested)
		if err != nil {
			return ev, fmt.Errorf("encode location: %w", err)
		}
		body["location"] = string(loc)
	}
	logger.Debug.Printf("[EventService.save] uploading image %q (%d bytes)", image.Filename, image.Size)
	err := s.client.Upload(ctx, method, path, token, body, "image", image, &ev)
	return ev, err
}

// Approve moves a pending event to APPROVED.
func (s *EventService) Approve(ctx context.Context, token, id string) error {
	return s.client.Do(ctx, http.MethodPatch, eventPath(id, "approve"), token, nil, nil, nil)
}

// Reject moves a pending event to REJECTED with a reason.
func (s *EventService) Reject(ctx context.Context, token, id, reason string) error {
	return s.client.Do(ctx, http.MethodPatch, eventPath(id, "reject"), token, nil, map[string]string{"reason": reason}, nil)
}

// End closes an approved event early.
func (s *EventService) End(ctx context.Context, token, id string) error {
	return s.client.Do(ctx, http.MethodPatch, eventPath(id, "end"), token, nil, nil, nil)
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, token, id string) error {
	return s.client.Do(ctx, http.MethodDelete, eventPath(id), token, nil, nil, nil)
}

// eventBody nests the flat form address/latitude/longitude under location.
func eventBody(fields map[string]any) map[string]any {
	body := make(map[string]any, len(fields))
	loc := map[string]any{}
	for k, v := range fields {
		switch k {
		case "address", "latitude", "longitude":
			loc[k] = v
		default:
			body[k] = v
		}
	}
	if len(loc) > 0 {
		body["location"] = loc
	}
	return body
}
