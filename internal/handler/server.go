// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/flightlookup"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/spec"
)

// The servicer interfaces are defined here, in the consumer package, so
// handler tests can inject a mock without building the store underneath.

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (service.TripSummary, error)
	Get(ctx context.Context, id string) (service.TripSummary, error)
	List(ctx context.Context, bucket string, p domain.PaginationParams) ([]service.TripSummary, int, error)
}

// FlightServicer defines the flight operations the handlers depend on.
type FlightServicer interface {
	List(ctx context.Context, tripID string) (service.FlightList, error)
	Create(ctx context.Context, tripID string, in domain.FlightInput) (domain.FlightInfo, error)
	Update(ctx context.Context, tripID, flightID string, in domain.FlightInput) (domain.FlightInfo, error)
	Delete(ctx context.Context, tripID, flightID string) error
	Clear(ctx context.Context, tripID string) error
	Lookup(ctx context.Context, q flightlookup.Query) (flightlookup.Result, error)
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	List(ctx context.Context, tripID string) ([]domain.ItineraryDay, error)
	AddDay(ctx context.Context, tripID, label string) (domain.ItineraryDay, error)
	RenameDay(ctx context.Context, tripID, dayID, label string) (domain.ItineraryDay, error)
	DeleteDay(ctx context.Context, tripID, dayID string) error
	AddEvent(ctx context.Context, tripID, dayID string, in domain.EventInput) (domain.ItineraryEvent, error)
	UpdateEvent(ctx context.Context, tripID, dayID, eventID string, in domain.EventInput) (domain.ItineraryEvent, error)
	DeleteEvent(ctx context.Context, tripID, dayID, eventID string) error
}

// ExpenseServicer defines the expense operations the handlers depend on.
type ExpenseServicer interface {
	List(ctx context.Context, tripID string) ([]domain.TripExpense, error)
	Create(ctx context.Context, tripID string, in domain.ExpenseInput) (domain.TripExpense, error)
	Update(ctx context.Context, tripID, expenseID string, in domain.ExpenseInput) (domain.TripExpense, error)
	Delete(ctx context.Context, tripID, expenseID string) error
	Totals(ctx context.Context, tripID string) (service.ExpenseTotals, error)
}

// JournalServicer defines the journal operations the handlers depend on.
type JournalServicer interface {
	List(ctx context.Context, tripID string) ([]domain.JournalEntry, error)
	Create(ctx context.Context, tripID string, in domain.JournalInput) (domain.JournalEntry, error)
	Update(ctx context.Context, tripID, entryID, text string) (domain.JournalEntry, error)
	Delete(ctx context.Context, tripID, entryID string) error
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// PhotoServicer picks trip header images.
type PhotoServicer interface {
	HeroImage(ctx context.Context, tripID, current string) (string, error)
}

// SessionServicer signs users in and out.
type SessionServicer interface {
	SignIn(ctx context.Context, phone string) (string, error)
	SignOut(ctx context.Context) error
	Current() string
	Status() service.Status
}

// Services bundles the dependencies of a Server. A nil service leaves its
// routes unregistered.
type Services struct {
	Trips     TripServicer
	Flights   FlightServicer
	Itinerary ItineraryServicer
	Expenses  ExpenseServicer
	Journal   JournalServicer
	Export    ExportServicer
	Photos    PhotoServicer
	Sessions  SessionServicer
}

// Server holds the services behind every endpoint.
type Server struct {
	svc Services
	log *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log}
}

// Routes returns a router serving every endpoint whose service is set.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	if s.svc.Sessions != nil {
		r.Get("/session", s.GetSession)
		r.Post("/session", s.SignIn)
		r.Delete("/session", s.SignOut)
		r.Get("/status", s.GetStatus)
	}
	if s.svc.Export != nil {
		r.Get("/export", s.GetExport)
	}
	if s.svc.Flights != nil {
		r.Post("/flights/lookup", s.LookupFlight)
	}

	r.Route("/trips", func(r chi.Router) {
		if s.svc.Trips != nil {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{tripId}", s.GetTrip)
		}
		if s.svc.Photos != nil {
			r.Get("/{tripId}/photo", s.GetTripPhoto)
		}
		if s.svc.Flights != nil {
			r.Route("/{tripId}/flights", func(r chi.Router) {
				r.Get("/", s.ListFlights)
				r.Post("/", s.CreateFlight)
				r.Delete("/", s.ClearFlights)
				r.Put("/{flightId}", s.UpdateFlight)
				r.Delete("/{flightId}", s.DeleteFlight)
			})
		}
		if s.svc.Itinerary != nil {
			r.Route("/{tripId}/itinerary", func(r chi.Router) {
				r.Get("/", s.ListItinerary)
				r.Post("/", s.AddItineraryDay)
				r.Put("/{dayId}", s.RenameItineraryDay)
				r.Delete("/{dayId}", s.DeleteItineraryDay)
				r.Post("/{dayId}/events", s.AddItineraryEvent)
				r.Put("/{dayId}/events/{eventId}", s.UpdateItineraryEvent)
				r.Delete("/{dayId}/events/{eventId}", s.DeleteItineraryEvent)
			})
		}
		if s.svc.Expenses != nil {
			r.Route("/{tripId}/expenses", func(r chi.Router) {
				r.Get("/", s.ListExpenses)
				r.Post("/", s.CreateExpense)
				r.Get("/totals", s.GetExpenseTotals)
				r.Put("/{expenseId}", s.UpdateExpense)
				r.Delete("/{expenseId}", s.DeleteExpense)
			})
		}
		if s.svc.Journal != nil {
			r.Route("/{tripId}/journal", func(r chi.Router) {
				r.Get("/", s.ListJournal)
				r.Post("/", s.CreateJournalEntry)
				r.Put("/{entryId}", s.UpdateJournalEntry)
				r.Delete("/{entryId}", s.DeleteJournalEntry)
			})
		}
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
