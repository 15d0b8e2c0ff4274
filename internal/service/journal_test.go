package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func newJournal(t *testing.T) (*service.JournalService, string) {
	t.Helper()
	s := newRealStore(t)
	trip := s.AddTrip(validTripInput())
	return service.NewJournalService(s), trip.ID
}

func TestJournalService_CreateNewestFirst(t *testing.T) {
	svc, tripID := newJournal(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, tripID, domain.JournalInput{Date: "2025-06-02", Text: "Pastéis de nata"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, tripID, domain.JournalInput{Date: "2025-06-03", Text: "  Fado night  "})
	require.NoError(t, err)

	entries, err := svc.List(ctx, tripID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, "Fado night", entries[0].Text)
}

func TestJournalService_Create_BlankDateIsToday(t *testing.T) {
	svc, tripID := newJournal(t)

	got, err := svc.Create(context.Background(), tripID, domain.JournalInput{Text: "Arrived"})

	require.NoError(t, err)
	assert.Len(t, got.Date, len("2006-01-02"))
}

func TestJournalService_Create_Validation(t *testing.T) {
	svc, tripID := newJournal(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, tripID, domain.JournalInput{Text: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, tripID, domain.JournalInput{Date: "June 2", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, "nope", domain.JournalInput{Text: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournalService_UpdateKeepsDate(t *testing.T) {
	svc, tripID := newJournal(t)
	ctx := context.Background()
	e, err := svc.Create(ctx, tripID, domain.JournalInput{Date: "2025-06-02", Text: "draft"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, tripID, e.ID, "final")

	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)
	assert.Equal(t, "2025-06-02", got.Date)

	_, err = svc.Update(ctx, tripID, e.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, tripID, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournalService_Delete(t *testing.T) {
	svc, tripID := newJournal(t)
	ctx := context.Background()
	e, err := svc.Create(ctx, tripID, domain.JournalInput{Text: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tripID, e.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tripID, e.ID), domain.ErrNotFound)

	entries, err := svc.List(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
