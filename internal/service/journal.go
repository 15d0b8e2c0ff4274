package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// JournalService implements business logic for journal entries.
type JournalService struct {
	store JournalStore
}

// NewJournalService constructs a JournalService backed by the provided store.
func NewJournalService(s JournalStore) *JournalService {
	return &JournalService{store: s}
}

// List returns the trip's entries, newest first.
func (s *JournalService) List(ctx context.Context, tripID string) ([]domain.JournalEntry, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return nil, fmt.Errorf("service.JournalService.List: %w", err)
	}
	return s.store.Journal(tripID), nil
}

// Create adds an entry. A blank date means today.
// Returns domain.ErrValidation when text is blank or the date is malformed.
func (s *JournalService) Create(ctx context.Context, tripID string, in domain.JournalInput) (domain.JournalEntry, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Create: %w", err)
	}
	if blank(in.Text) {
		return domain.JournalEntry{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	if !blank(in.Date) {
		if err := validateDate("date", trimmed(in.Date)); err != nil {
			return domain.JournalEntry{}, err
		}
	}
	return s.store.AddJournalEntry(tripID, in), nil
}

// Update replaces an entry's text. The date of an entry never changes.
func (s *JournalService) Update(ctx context.Context, tripID, entryID, text string) (domain.JournalEntry, error) {
	if _, err := s.find(ctx, tripID, entryID); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", err)
	}
	if blank(text) {
		return domain.JournalEntry{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	s.store.UpdateJournalEntry(tripID, entryID, text)
	e, _ := s.store.JournalEntry(tripID, entryID)
	return e, nil
}

// Delete removes an entry.
func (s *JournalService) Delete(ctx context.Context, tripID, entryID string) error {
	if _, err := s.find(ctx, tripID, entryID); err != nil {
		return fmt.Errorf("service.JournalService.Delete: %w", err)
	}
	s.store.DeleteJournalEntry(tripID, entryID)
	return nil
}

func (s *JournalService) find(ctx context.Context, tripID, entryID string) (domain.JournalEntry, error) {
	if _, err := requireTrip(ctx, s.store, tripID); err != nil {
		return domain.JournalEntry{}, err
	}
	e, ok := s.store.JournalEntry(tripID, entryID)
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("journal entry %q: %w", entryID, domain.ErrNotFound)
	}
	return e, nil
}
