// Package app wires configuration, storage, the trip store and the service
// layer together. cmd/api and cmd/tripctl both build on it so the two
// binaries see the same data the same way.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.uber.org/multierr"

	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/flightlookup"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/identity"
	"github.com/pkordes/trip-planner/backend/internal/photos"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

// NewLogger returns a JSON slog.Logger writing to w at the named level.
// Unknown level names fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// App owns every long-lived dependency. Build it with New and release it
// with Close.
type App struct {
	Config   config.Config
	Log      *slog.Logger
	Blobs    repo.BlobStore
	Store    *store.Store
	Sessions *identity.Session

	Trips     *service.TripService
	Flights   *service.FlightService
	Itinerary *service.ItineraryService
	Expenses  *service.ExpenseService
	Journal   *service.JournalService
	Export    *service.ExportService
	Photos    *service.PhotoService
	Session   *service.SessionService

	closeBlobs func() error
}

// New opens the configured blob store, restores the remembered user and
// starts hydrating their trips. Hydration continues in the background;
// services wait for it on first use.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	blobs, closeBlobs, err := repo.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	log.Info("storage ready", "driver", cfg.StorageDriver)

	st := store.New(blobs,
		store.WithLogger(log),
		store.WithRetry(cfg.PersistMaxRetries, cfg.PersistBackoff),
	)
	sessions := identity.NewSession(blobs, log)

	// A nil collaborator leaves its feature disabled.
	var hero service.HeroSource
	if cfg.PexelsAPIKey != "" {
		client := photos.NewClient(cfg.PexelsAPIKey, photos.WithLogger(log))
		hero = photos.NewHeroCache(blobs, client, cfg.PhotoCacheTTL, photos.WithHeroLogger(log))
	}
	var lookup service.FlightLookup
	if cfg.FlightAPIKey != "" {
		lookup = flightlookup.NewClient(cfg.FlightAPIKey, flightlookup.WithLogger(log))
	}

	a := &App{
		Config:     cfg,
		Log:        log,
		Blobs:      blobs,
		Store:      st,
		Sessions:   sessions,
		Trips:      service.NewTripService(st, time.Now),
		Flights:    service.NewFlightService(st, lookup, time.Now),
		Itinerary:  service.NewItineraryService(st),
		Expenses:   service.NewExpenseService(st),
		Journal:    service.NewJournalService(st),
		Export:     service.NewExportService(st),
		Photos:     service.NewPhotoService(st, hero),
		Session:    service.NewSessionService(sessions, st),
		closeBlobs: closeBlobs,
	}

	user := sessions.Load(ctx)
	if user != "" {
		log.Info("restoring session", "user", user)
	}
	st.SetIdentity(ctx, user)
	return a, nil
}

// UseIdentity points the store at phone's trips without touching the
// remembered session, and waits for them to load.
// Returns domain.ErrValidation for an invalid phone number.
func (a *App) UseIdentity(ctx context.Context, phone string) error {
	if !identity.ValidPhone(phone) {
		return fmt.Errorf("app.App.UseIdentity: %w: invalid phone number %q", domain.ErrValidation, phone)
	}
	a.Store.SetIdentity(ctx, identity.NormalizePhone(phone))
	if err := a.Store.WaitHydrated(ctx); err != nil {
		return fmt.Errorf("app.App.UseIdentity: %w", err)
	}
	return nil
}

// Server returns the HTTP handlers backed by this App's services.
func (a *App) Server() *handler.Server {
	return handler.NewServer(handler.Services{
		Trips:     a.Trips,
		Flights:   a.Flights,
		Itinerary: a.Itinerary,
		Expenses:  a.Expenses,
		Journal:   a.Journal,
		Export:    a.Export,
		Photos:    a.Photos,
		Sessions:  a.Session,
	}, a.Log)
}

// Close flushes pending writes and releases the blob store. Both steps run
// even when the first fails.
func (a *App) Close(ctx context.Context) error {
	err := a.Store.Close(ctx)
	if err != nil {
		err = fmt.Errorf("close store: %w", err)
	}
	if cerr := a.closeBlobs(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("close storage: %w", cerr))
	}
	return err
}
