package store

import (
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AddJournalEntry puts a new entry at the front of the trip's journal.
// A blank date means today in the clock's location.
func (s *Store) AddJournalEntry(tripID string, in domain.JournalInput) domain.JournalEntry {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}
	entry := domain.JournalEntry{
		ID:   s.newID(),
		Date: date,
		Text: strings.TrimSpace(in.Text),
	}

	s.mutate(func(st *domain.State) bool {
		st.JournalByTripID[tripID] = append([]domain.JournalEntry{entry}, st.JournalByTripID[tripID]...)
		return true
	})
	return entry
}

// UpdateJournalEntry replaces an entry's text. The date never changes and a
// blank text keeps the previous one.
func (s *Store) UpdateJournalEntry(tripID, entryID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.mutate(func(st *domain.State) bool {
		entries := st.JournalByTripID[tripID]
		for i := range entries {
			if entries[i].ID == entryID {
				entries[i].Text = strings.TrimSpace(text)
				return true
			}
		}
		return false
	})
}

// DeleteJournalEntry removes one entry.
func (s *Store) DeleteJournalEntry(tripID, entryID string) {
	s.mutate(func(st *domain.State) bool {
		entries, ok := st.JournalByTripID[tripID]
		if !ok {
			return false
		}
		out, removed := without(entries, func(e domain.JournalEntry) bool { return e.ID == entryID })
		st.JournalByTripID[tripID] = out
		return removed
	})
}

// Journal returns the trip's entries, newest first.
func (s *Store) Journal(tripID string) []domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.JournalEntry{}, s.state.JournalByTripID[tripID]...)
}

// JournalEntry returns one entry of the trip.
func (s *Store) JournalEntry(tripID, entryID string) (domain.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.JournalByTripID[tripID] {
		if e.ID == entryID {
			return e, true
		}
	}
	return domain.JournalEntry{}, false
}
