// Package snapshot converts between the persisted JSON document and the
// in-memory domain.State, upgrading superseded shapes on the way in.
//
// Decoding is tagged: every top-level field is decoded on its own, and a
// field that does not match its expected shape is treated as absent rather
// than failing the whole document. Inside collections the same applies per
// element, so one bad record costs only itself.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CurrentVersion is written to every saved document. Documents without a
// version predate it and go through shape detection.
const CurrentVersion = 2

// ErrMalformed is returned by Decode when the blob is not a JSON object.
var ErrMalformed = errors.New("snapshot: malformed document")

// persisted is the on-disk shape written by Encode.
type persisted struct {
	SchemaVersion     int                              `json:"schemaVersion"`
	Trips             []domain.Trip                    `json:"trips"`
	FlightsByTripID   map[string][]domain.FlightInfo   `json:"flightsByTripId"`
	ItineraryByTripID map[string][]domain.ItineraryDay `json:"itineraryByTripId"`
	ExpensesByTripID  map[string][]storedExpense       `json:"expensesByTripId"`
	JournalByTripID   map[string][]domain.JournalEntry `json:"journalByTripId"`
}

// storedExpense writes the amount as a JSON number, the shape the mobile
// app always stored. Decoding accepts numbers and strings alike.
type storedExpense struct {
	domain.TripExpense
	Amount json.Number `json:"amount"`
}

// legacyFlight is the single-flight-per-trip shape that preceded flight lists.
// It had no id; every other field maps 1:1 onto domain.FlightInfo.
type legacyFlight struct {
	Segment       string `json:"segment"`
	DepartureDate string `json:"departureDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalDate   string `json:"arrivalDate"`
	ArrivalTime   string `json:"arrivalTime"`
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	From          string `json:"from"`
	FromCity      string `json:"fromCity"`
	To            string `json:"to"`
	ToCity        string `json:"toCity"`
}

// Document is a decoded blob before migration. A nil field was absent or
// malformed in the blob. Malformed list elements are dropped.
type Document struct {
	Version           int
	Trips             []domain.Trip
	FlightsByTripID   map[string][]domain.FlightInfo
	LegacyFlights     map[string]*legacyFlight
	ItineraryByTripID map[string][]domain.ItineraryDay
	ExpensesByTripID  map[string][]domain.TripExpense
	JournalByTripID   map[string][]domain.JournalEntry
}

// Decode parses raw into a Document. It fails only when raw is not a JSON
// object; individual malformed fields come back nil and malformed elements
// are left out of their lists.
func Decode(raw []byte) (Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var doc Document
	decodeField(fields, "schemaVersion", &doc.Version, decodeValue[int])
	decodeField(fields, "trips", &doc.Trips, decodeList[domain.Trip])
	decodeField(fields, "flightsByTripId", &doc.FlightsByTripID, decodeMap(decodeList[domain.FlightInfo]))
	decodeField(fields, "flightByTripId", &doc.LegacyFlights, decodeMap(decodeValue[*legacyFlight]))
	decodeField(fields, "itineraryByTripId", &doc.ItineraryByTripID, decodeMap(decodeList[domain.ItineraryDay]))
	decodeField(fields, "expensesByTripId", &doc.ExpensesByTripID, decodeMap(decodeList[domain.TripExpense]))
	decodeField(fields, "journalByTripId", &doc.JournalByTripID, decodeMap(decodeList[domain.JournalEntry]))
	return doc, nil
}

// decodeField decodes fields[name] into dst, leaving dst untouched when the
// field is missing or does not fit.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T, decode func(json.RawMessage) (T, bool)) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	if v, ok := decode(raw); ok {
		*dst = v
	}
}

func decodeValue[T any](raw json.RawMessage) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// decodeList decodes a JSON array element by element, dropping elements that
// do not fit. null decodes to an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := decodeValue[T](item); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// decodeMap returns a decoder for a JSON object whose values are decoded
// one by one with value. Entries that do not fit are dropped; a JSON null
// or non-object does not fit at all.
func decodeMap[T any](value func(json.RawMessage) (T, bool)) func(json.RawMessage) (map[string]T, bool) {
	return func(raw json.RawMessage) (map[string]T, bool) {
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
			return nil, false
		}
		out := make(map[string]T, len(entries))
		for k, v := range entries {
			if decoded, ok := value(v); ok {
				out[k] = decoded
			}
		}
		return out, true
	}
}

// Migrate turns a Document into the current State. newID supplies ids for
// flights converted from the legacy shape. Migrating an already-current
// document changes nothing.
func Migrate(doc Document, newID func() string) domain.State {
	state := domain.NewState()

	for _, t := range doc.Trips {
		if t.ID == "" {
			t.ID = domain.TripID(domain.TripInput{Destination: t.Destination, StartDate: t.StartDate, EndDate: t.EndDate})
		}
		state.Trips = append(state.Trips, t)
	}

	switch {
	case doc.FlightsByTripID != nil:
		for tripID, flights := range doc.FlightsByTripID {
			out := make([]domain.FlightInfo, 0, len(flights))
			for _, f := range flights {
				f.Segment = domain.ParseSegment(string(f.Segment))
				out = append(out, f)
			}
			state.FlightsByTripID[tripID] = out
		}
	case doc.LegacyFlights != nil && doc.Version < CurrentVersion:
		for tripID, lf := range doc.LegacyFlights {
			if lf == nil {
				continue
			}
			state.FlightsByTripID[tripID] = []domain.FlightInfo{lf.toFlight(newID())}
		}
	}

	for tripID, days := range doc.ItineraryByTripID {
		out := domain.CloneDays(days)
		if out == nil {
			out = []domain.ItineraryDay{}
		}
		state.ItineraryByTripID[tripID] = out
	}
	for tripID, expenses := range doc.ExpensesByTripID {
		state.ExpensesByTripID[tripID] = append([]domain.TripExpense{}, expenses...)
	}
	for tripID, entries := range doc.JournalByTripID {
		state.JournalByTripID[tripID] = append([]domain.JournalEntry{}, entries...)
	}
	return state
}

func (lf legacyFlight) toFlight(id string) domain.FlightInfo {
	return domain.FlightInfo{
		ID:            id,
		Segment:       domain.ParseSegment(lf.Segment),
		DepartureDate: lf.DepartureDate,
		DepartureTime: lf.DepartureTime,
		ArrivalDate:   lf.ArrivalDate,
		ArrivalTime:   lf.ArrivalTime,
		Airline:       lf.Airline,
		FlightNumber:  lf.FlightNumber,
		From:          lf.From,
		FromCity:      lf.FromCity,
		To:            lf.To,
		ToCity:        lf.ToCity,
	}
}

// Load decodes and migrates raw in one step.
func Load(raw []byte, newID func() string) (domain.State, error) {
	doc, err := Decode(raw)
	if err != nil {
		return domain.State{}, err
	}
	return Migrate(doc, newID), nil
}

// Encode serialises state in the current shape, tagged with CurrentVersion.
// Nil collections are written as empty arrays/objects.
func Encode(state domain.State) ([]byte, error) {
	p := persisted{
		SchemaVersion:     CurrentVersion,
		Trips:             state.Trips,
		FlightsByTripID:   state.FlightsByTripID,
		ItineraryByTripID: state.ItineraryByTripID,
		ExpensesByTripID:  make(map[string][]storedExpense, len(state.ExpensesByTripID)),
		JournalByTripID:   state.JournalByTripID,
	}
	if p.Trips == nil {
		p.Trips = []domain.Trip{}
	}
	if p.FlightsByTripID == nil {
		p.FlightsByTripID = map[string][]domain.FlightInfo{}
	}
	if p.ItineraryByTripID == nil {
		p.ItineraryByTripID = map[string][]domain.ItineraryDay{}
	}
	for tripID, expenses := range state.ExpensesByTripID {
		out := make([]storedExpense, len(expenses))
		for i, e := range expenses {
			out[i] = storedExpense{TripExpense: e, Amount: json.Number(e.Amount.String())}
		}
		p.ExpensesByTripID[tripID] = out
	}
	if p.JournalByTripID == nil {
		p.JournalByTripID = map[string][]domain.JournalEntry{}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Encode: %w", err)
	}
	return data, nil
}
