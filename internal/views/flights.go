package views

import (
	"cmp"
	"slices"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// InferSegment classifies a flight from its departure day relative to the
// trip: on or before the start day is going, on or after the end day is
// return, anything between is mid. Unparseable dates classify as mid.
func InferSegment(trip domain.Trip, flight domain.FlightInfo, loc *time.Location) domain.Segment {
	start, okStart := ParseTripDay(trip.StartDate, loc)
	end, okEnd := ParseTripDay(trip.EndDate, loc)
	dep, okDep := ParseTripDay(flight.DepartureDate, loc)
	if !okStart || !okEnd || !okDep {
		return domain.SegmentMid
	}
	switch {
	case !dep.After(start):
		return domain.SegmentGoing
	case !dep.Before(end):
		return domain.SegmentReturn
	default:
		return domain.SegmentMid
	}
}

// EffectiveSegment returns the flight's explicit segment, or the inferred one
// when it is auto.
func EffectiveSegment(trip domain.Trip, flight domain.FlightInfo, loc *time.Location) domain.Segment {
	if s := domain.ParseSegment(string(flight.Segment)); s != domain.SegmentAuto {
		return s
	}
	return InferSegment(trip, flight, loc)
}

// SegmentGroups holds a trip's flights split by effective segment, each in
// the order given to GroupBySegment.
type SegmentGroups struct {
	Going  []domain.FlightInfo `json:"going"`
	Mid    []domain.FlightInfo `json:"mid"`
	Return []domain.FlightInfo `json:"return"`
}

// GroupBySegment partitions flights by EffectiveSegment, preserving order.
func GroupBySegment(trip domain.Trip, flights []domain.FlightInfo, loc *time.Location) SegmentGroups {
	g := SegmentGroups{Going: []domain.FlightInfo{}, Mid: []domain.FlightInfo{}, Return: []domain.FlightInfo{}}
	for _, f := range flights {
		switch EffectiveSegment(trip, f, loc) {
		case domain.SegmentGoing:
			g.Going = append(g.Going, f)
		case domain.SegmentReturn:
			g.Return = append(g.Return, f)
		default:
			g.Mid = append(g.Mid, f)
		}
	}
	return g
}

// SortFlightsForDisplay returns upcoming flights (departing at or after now)
// in ascending order followed by past flights in descending order. Flights
// whose date or time does not parse count as past and sort last.
func SortFlightsForDisplay(flights []domain.FlightInfo, now time.Time) []domain.FlightInfo {
	type dated struct {
		flight domain.FlightInfo
		at     time.Time
		ok     bool
	}

	var upcoming, past []dated
	for _, f := range flights {
		at, ok := ParseFlightDateTime(f.DepartureDate, f.DepartureTime, now.Location())
		d := dated{flight: f, at: at, ok: ok}
		if ok && !at.Before(now) {
			upcoming = append(upcoming, d)
		} else {
			past = append(past, d)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b dated) int { return a.at.Compare(b.at) })
	slices.SortStableFunc(past, func(a, b dated) int {
		// Undated flights are treated as infinitely old.
		switch {
		case a.ok && b.ok:
			return b.at.Compare(a.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.FlightInfo, 0, len(flights))
	for _, d := range upcoming {
		out = append(out, d.flight)
	}
	for _, d := range past {
		out = append(out, d.flight)
	}
	return out
}

// CountdownDate is the date a trip countdown runs to: the departure date of
// the first flight in display order, or the trip's start date when it has no
// flights.
func CountdownDate(trip domain.Trip, flights []domain.FlightInfo, now time.Time) string {
	sorted := SortFlightsForDisplay(flights, now)
	if len(sorted) > 0 {
		return sorted[0].DepartureDate
	}
	return trip.StartDate
}

// SortEvents orders a day's events by clock time. Events whose time does not
// parse keep their relative order after the timed ones.
func SortEvents(events []domain.ItineraryEvent) []domain.ItineraryEvent {
	type timed struct {
		event   domain.ItineraryEvent
		minutes int
		ok      bool
	}
	items := make([]timed, len(events))
	for i, e := range events {
		h, m, ok := ParseClock(e.Time)
		items[i] = timed{event: e, minutes: h*60 + m, ok: ok}
	}

	slices.SortStableFunc(items, func(a, b timed) int {
		switch {
		case a.ok && b.ok:
			return cmp.Compare(a.minutes, b.minutes)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.ItineraryEvent, len(items))
	for i, it := range items {
		out[i] = it.event
	}
	return out
}
