package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// TripRequest is the body of POST /trips.
type TripRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []service.TripSummary `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// CreateTrip handles POST /trips.
// Re-adding an existing trip returns it unchanged with 201.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}

	created, err := s.svc.Trips.Create(r.Context(), domain.TripInput{
		Destination: body.Destination,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	})
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?bucket=upcoming|past.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	var bucket *string
	if err := queryParam(r, "page", &page); err != nil {
		requestError(w, err)
		return
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		requestError(w, err)
		return
	}
	if err := queryParam(r, "bucket", &bucket); err != nil {
		requestError(w, err)
		return
	}

	params := domain.NewPaginationParams(page, limit)
	b := service.BucketAll
	if bucket != nil {
		b = *bucket
	}
	trips, total, err := s.svc.Trips.List(r.Context(), b, params)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	if trips == nil {
		trips = []service.TripSummary{}
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       trips,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	trip, err := s.svc.Trips.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
