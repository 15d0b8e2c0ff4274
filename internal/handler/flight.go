package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/flightlookup"
)

// FlightRequest is the body of POST and PUT on flights. On update, a blank
// departure date or time keeps the stored value.
type FlightRequest struct {
	Segment       domain.Segment `json:"segment"`
	DepartureDate string         `json:"departureDate"`
	DepartureTime string         `json:"departureTime"`
	ArrivalDate   string         `json:"arrivalDate"`
	ArrivalTime   string         `json:"arrivalTime"`
	Airline       string         `json:"airline"`
	FlightNumber  string         `json:"flightNumber"`
	From          string         `json:"from"`
	FromCity      string         `json:"fromCity"`
	To            string         `json:"to"`
	ToCity        string         `json:"toCity"`
}

func (b FlightRequest) input() domain.FlightInput {
	return domain.FlightInput{
		Segment:       b.Segment,
		DepartureDate: b.DepartureDate,
		DepartureTime: b.DepartureTime,
		ArrivalDate:   b.ArrivalDate,
		ArrivalTime:   b.ArrivalTime,
		Airline:       b.Airline,
		FlightNumber:  b.FlightNumber,
		From:          b.From,
		FromCity:      b.FromCity,
		To:            b.To,
		ToCity:        b.ToCity,
	}
}

// LookupRequest is the body of POST /flights/lookup.
type LookupRequest struct {
	Airline      string `json:"airline"`
	AirlineIATA  string `json:"airlineIata"`
	FlightNumber string `json:"flightNumber"`
	Date         string `json:"date"`
}

// ListFlights handles GET /trips/{tripId}/flights.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	list, err := s.svc.Flights.List(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateFlight handles POST /trips/{tripId}/flights.
func (s *Server) CreateFlight(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body FlightRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	f, err := s.svc.Flights.Create(r.Context(), tripID, body.input())
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// UpdateFlight handles PUT /trips/{tripId}/flights/{flightId}.
func (s *Server) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "flightId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body FlightRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	f, err := s.svc.Flights.Update(r.Context(), ids[0], ids[1], body.input())
	if err != nil {
		s.serviceError(w, r, err, "flight not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DeleteFlight handles DELETE /trips/{tripId}/flights/{flightId}.
func (s *Server) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "flightId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Flights.Delete(r.Context(), ids[0], ids[1]); err != nil {
		s.serviceError(w, r, err, "flight not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearFlights handles DELETE /trips/{tripId}/flights.
func (s *Server) ClearFlights(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Flights.Clear(r.Context(), tripID); err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LookupFlight handles POST /flights/lookup. The result is a suggestion;
// nothing is stored.
func (s *Server) LookupFlight(w http.ResponseWriter, r *http.Request) {
	var body LookupRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	res, err := s.svc.Flights.Lookup(r.Context(), flightlookup.Query{
		Airline:      body.Airline,
		AirlineIATA:  body.AirlineIATA,
		FlightNumber: body.FlightNumber,
		Date:         body.Date,
	})
	if err != nil {
		s.serviceError(w, r, err, "no flight found for that airline, number and date")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
