// Package domain contains the core data types for the trip planner store.
// It depends only on value libraries (decimal) and is imported by every other
// internal package (snapshot, store, views, service, handler).
package domain

import "strings"

// Trip is the top-level aggregate. Its ID is a natural key derived from the
// defining fields, so adding the same trip twice yields one record.
// Child collections are keyed by trip ID in State rather than embedded here.
type Trip struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"` // ISO date, "2006-01-02"
	EndDate     string `json:"endDate"`
}

// TripInput carries the defining fields of a new trip.
type TripInput struct {
	Destination string
	StartDate   string
	EndDate     string
}

// TripID returns the natural key "destination|startDate|endDate".
func TripID(in TripInput) string {
	return strings.Join([]string{in.Destination, in.StartDate, in.EndDate}, "|")
}
