package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardiomed/internal/models"

	"googlemaps.github.io/maps"
)

var (
	ErrNoAPIKey       = errors.New("google maps api key not configured")
	ErrPlaceNotFound  = errors.New("place not found")
	placeDetailFields = []maps.PlaceDetailsFieldMask{
		maps.PlaceDetailsFieldMaskGeometry,
		maps.PlaceDetailsFieldMaskFormattedAddress,
		maps.PlaceDetailsFieldMaskName,
		maps.PlaceDetailsFieldMaskPlaceID,
	}
)

// PlaceResolver turns a Google Place ID into a stored location
type PlaceResolver interface {
	ResolvePlace(ctx context.Context, placeID string) (*models.Location, error)
}

type MapsService struct {
	client  *maps.Client
	timeout time.Duration
}

// NewMapsService creates the Google Maps client
func NewMapsService(apiKey string) (*MapsService, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &MapsService{client: client, timeout: 5 * time.Second}, nil
}

// ResolvePlace validates and standardizes a clinic location using its Place ID
func (s *MapsService) ResolvePlace(ctx context.Context, placeID string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  placeDetailFields,
	})
	if err != nil {
		return nil, fmt.Errorf("place details for %s: %w", placeID, err)
	}
	if response.PlaceID == "" {
		return nil, ErrPlaceNotFound
	}

	return &models.Location{
		PlaceID:          response.PlaceID,
		Name:             response.Name,
		FormattedAddress: response.FormattedAddress,
		Latitude:         response.Geometry.Location.Lat,
		Longitude:        response.Geometry.Location.Lng,
	}, nil
}
