package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// JournalRequest is the body of POST /trips/{tripId}/journal. A blank date
// means today.
type JournalRequest struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// JournalUpdateRequest is the body of PUT on a journal entry. Only the text
// of an entry can change.
type JournalUpdateRequest struct {
	Text string `json:"text"`
}

// ListJournal handles GET /trips/{tripId}/journal.
func (s *Server) ListJournal(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	entries, err := s.svc.Journal.List(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateJournalEntry handles POST /trips/{tripId}/journal.
func (s *Server) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body JournalRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	e, err := s.svc.Journal.Create(r.Context(), tripID, domain.JournalInput{Date: body.Date, Text: body.Text})
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateJournalEntry handles PUT /trips/{tripId}/journal/{entryId}.
func (s *Server) UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "entryId")
	if err != nil {
		requestError(w, err)
		return
	}
	var body JournalUpdateRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	e, err := s.svc.Journal.Update(r.Context(), ids[0], ids[1], body.Text)
	if err != nil {
		s.serviceError(w, r, err, "journal entry not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteJournalEntry handles DELETE /trips/{tripId}/journal/{entryId}.
func (s *Server) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	ids, err := pathParams(r, "tripId", "entryId")
	if err != nil {
		requestError(w, err)
		return
	}
	if err := s.svc.Journal.Delete(r.Context(), ids[0], ids[1]); err != nil {
		s.serviceError(w, r, err, "journal entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
