package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// The itinerary tests run against a real in-memory store: day and event
// operations interact (cascade deletes, nested lookups) in ways a mock would
// only restate.

func newItinerary(t *testing.T) (*service.ItineraryService, string) {
	t.Helper()
	s := newRealStore(t)
	trip := s.AddTrip(validTripInput())
	return service.NewItineraryService(s), trip.ID
}

func TestItineraryService_AddDay_DefaultLabel(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()

	first, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)
	second, err := svc.AddDay(ctx, tripID, "Sintra")
	require.NoError(t, err)
	third, err := svc.AddDay(ctx, tripID, "  ")
	require.NoError(t, err)

	assert.Equal(t, "Day 1", first.Label)
	assert.Equal(t, "Sintra", second.Label)
	assert.Equal(t, "Day 3", third.Label)
	assert.NotNil(t, first.Events)
}

func TestItineraryService_UnknownTrip(t *testing.T) {
	svc, _ := newItinerary(t)

	_, err := svc.AddDay(context.Background(), "nope", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_RenameDay(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)

	got, err := svc.RenameDay(ctx, tripID, day.ID, "Arrival")
	require.NoError(t, err)
	assert.Equal(t, "Arrival", got.Label)

	_, err = svc.RenameDay(ctx, tripID, day.ID, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.RenameDay(ctx, tripID, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_EventsSortedByTime(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)

	for _, in := range []domain.EventInput{
		{Name: "Dinner", Time: "8:00 PM"},
		{Name: "Tram 28", Time: "09:15", Location: "Martim Moniz"},
		{Name: "Lunch", Time: "12:30 PM"},
	} {
		_, err := svc.AddEvent(ctx, tripID, day.ID, in)
		require.NoError(t, err)
	}

	days, err := svc.List(ctx, tripID)

	require.NoError(t, err)
	require.Len(t, days, 1)
	var names []string
	for _, e := range days[0].Events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Tram 28", "Lunch", "Dinner"}, names)
}

func TestItineraryService_AddEvent_Validation(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)

	_, err = svc.AddEvent(ctx, tripID, day.ID, domain.EventInput{Name: "", Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddEvent(ctx, tripID, day.ID, domain.EventInput{Name: "Museum", Time: "mid-morning"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddEvent(ctx, tripID, "missing", domain.EventInput{Name: "Museum", Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_UpdateEvent(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)
	ev, err := svc.AddEvent(ctx, tripID, day.ID, domain.EventInput{Name: "Museum", Time: "10:00", Location: "Belém"})
	require.NoError(t, err)

	got, err := svc.UpdateEvent(ctx, tripID, day.ID, ev.ID, domain.EventInput{Time: "11:00"})

	require.NoError(t, err)
	assert.Equal(t, "Museum", got.Name, "blank name keeps the stored one")
	assert.Equal(t, "11:00", got.Time)
	assert.Empty(t, got.Location, "blank location clears it")

	_, err = svc.UpdateEvent(ctx, tripID, day.ID, ev.ID, domain.EventInput{Time: "soon"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateEvent(ctx, tripID, day.ID, "missing", domain.EventInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_DeleteDayCascades(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)
	ev, err := svc.AddEvent(ctx, tripID, day.ID, domain.EventInput{Name: "Museum", Time: "10:00"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDay(ctx, tripID, day.ID))

	days, err := svc.List(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, tripID, day.ID, ev.ID), domain.ErrNotFound)
}

func TestItineraryService_DeleteEvent(t *testing.T) {
	svc, tripID := newItinerary(t)
	ctx := context.Background()
	day, err := svc.AddDay(ctx, tripID, "")
	require.NoError(t, err)
	ev, err := svc.AddEvent(ctx, tripID, day.ID, domain.EventInput{Name: "Museum", Time: "10:00"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, tripID, day.ID, ev.ID))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, tripID, day.ID, ev.ID), domain.ErrNotFound)

	days, err := svc.List(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Events)
}
