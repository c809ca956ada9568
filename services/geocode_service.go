// file: services/geocode_service.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Place is one geocoding match.
type Place struct {
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// GeocoderInterface resolves a free-text address to coordinates.
type GeocoderInterface interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Geocoder queries a Nominatim-compatible search endpoint.
type Geocoder struct {
	client *Client
	limit  int
}

// NewGeocoder creates a Geocoder over client, which should point at the geocoding host.
func NewGeocoder(client *Client) *Geocoder {
	return &Geocoder{client: client, limit: 5}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to five places for query. Blank queries return nothing.
func (g *Geocoder) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	q := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {strconv.Itoa(g.limit)},
	}

	var raw []nominatimResult
	if err := g.client.Do(ctx, http.MethodGet, "/search", "", q, nil, &raw); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode lat %q: %w", r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode lon %q: %w", r.Lon, err)
		}
		places = append(places, Place{DisplayName: r.DisplayName, Lat: lat, Lon: lon})
	}
	return places, nil
}
