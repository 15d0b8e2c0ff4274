package service

import (
	"context"
	"fmt"
)

// HeroSource hands out destination images. *photos.HeroCache implements it.
type HeroSource interface {
	Next(ctx context.Context, destination, current string) string
}

// PhotoService picks header images for trips.
type PhotoService struct {
	trips interface {
		readiness
		tripLookup
	}
	hero HeroSource
}

// NewPhotoService constructs a PhotoService. hero may be nil when photo
// search is not configured.
func NewPhotoService(trips TripStore, hero HeroSource) *PhotoService {
	return &PhotoService{trips: trips, hero: hero}
}

// HeroImage returns the next image URL for the trip's destination, avoiding
// current. It returns "" when no image is available.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *PhotoService) HeroImage(ctx context.Context, tripID, current string) (string, error) {
	trip, err := requireTrip(ctx, s.trips, tripID)
	if err != nil {
		return "", fmt.Errorf("service.PhotoService.HeroImage: %w", err)
	}
	if s.hero == nil {
		return "", nil
	}
	return s.hero.Next(ctx, trip.Destination, current), nil
}
