package domain

// ItineraryDay is a labelled day of a trip's plan. It owns its events:
// deleting the day deletes them.
type ItineraryDay struct {
	ID     string           `json:"id"`
	Label  string           `json:"label"`
	Events []ItineraryEvent `json:"events"`
}

// ItineraryEvent is a single planned activity. Events are unordered in
// storage; display order is computed by views.SortEvents.
type ItineraryEvent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Time     string `json:"time"`
	Location string `json:"location,omitempty"`
}

// EventInput is the caller-supplied content of an itinerary event.
type EventInput struct {
	Name     string
	Time     string
	Location string
}
