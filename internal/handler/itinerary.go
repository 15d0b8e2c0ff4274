package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DayRequest is the body of POST and PUT on itinerary days.
type DayRequest struct {
	Label string `json:"label"`
}

// EventRequest is the body of POST and PUT on itinerary events.
type EventRequest struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

func (b EventRequest) input() domain.EventInput {
	return domain.EventInput{Name: b.Name, Time: b.Time, Location: b.Location}
}

// ListItinerary handles GET /trips/{tripId}/itinerary.
func (s *Server) ListItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	days, err := s.svc.Itinerary.List(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// AddItineraryDay handles POST /trips/{tripId}/itinerary.
// The body is optional; without a label the day is named "Day N".
func (s *Server) AddItineraryDay(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body DayRequest
	if err := decodeBody(r, &body); err != nil && !errors.Is(err, errNoBody) {
		requestError(w, err)
		return
	}
	day, err := s.svc.Itinerary.AddDay(r.Context(), tripID, body.Label)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

// RenameItineraryDay handles PUT /trips/{tripId}/itinerary/{dayId}.
func (s *Server) RenameItineraryDay(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "dayId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body DayRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	day, err := s.svc.Itinerary.RenameDay(r.Context(), ids[0], ids[1], body.Label)
	if err != nil {
		s.serviceError(w, r, err, "itinerary day not found")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// DeleteItineraryDay handles DELETE /trips/{tripId}/itinerary/{dayId}.
// The day's events go with it.
func (s *Server) DeleteItineraryDay(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "dayId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Itinerary.DeleteDay(r.Context(), ids[0], ids[1]); err != nil {
		s.serviceError(w, r, err, "itinerary day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItineraryEvent handles POST /trips/{tripId}/itinerary/{dayId}/events.
func (s *Server) AddItineraryEvent(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "dayId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body EventRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	ev, err := s.svc.Itinerary.AddEvent(r.Context(), ids[0], ids[1], body.input())
	if err != nil {
		s.serviceError(w, r, err, "itinerary day not found")
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// UpdateItineraryEvent handles PUT /trips/{tripId}/itinerary/{dayId}/events/{eventId}.
func (s *Server) UpdateItineraryEvent(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "dayId", "eventId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body EventRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	ev, err := s.svc.Itinerary.UpdateEvent(r.Context(), ids[0], ids[1], ids[2], body.input())
	if err != nil {
		s.serviceError(w, r, err, "itinerary event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// DeleteItineraryEvent handles DELETE /trips/{tripId}/itinerary/{dayId}/events/{eventId}.
func (s *Server) DeleteItineraryEvent(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "dayId", "eventId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Itinerary.DeleteEvent(r.Context(), ids[0], ids[1], ids[2]); err != nil {
		s.serviceError(w, r, err, "itinerary event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
