package domain

// Segment classifies a flight as the outbound, mid-trip, or return leg.
// SegmentAuto means "infer from the trip dates".
type Segment string

const (
	SegmentAuto   Segment = "auto"
	SegmentGoing  Segment = "going"
	SegmentMid    Segment = "mid"
	SegmentReturn Segment = "return"
)

// ParseSegment maps a persisted or user-supplied value onto a known Segment.
// Anything unrecognised, including "", becomes SegmentAuto.
func ParseSegment(s string) Segment {
	switch Segment(s) {
	case SegmentGoing, SegmentMid, SegmentReturn:
		return Segment(s)
	default:
		return SegmentAuto
	}
}

// FlightInfo is one flight attached to a trip.
// ID is an opaque surrogate key: flights are not unique by content.
// Optional string fields use "" for absent and are omitted from JSON.
type FlightInfo struct {
	ID            string  `json:"id"`
	Segment       Segment `json:"segment"`
	DepartureDate string  `json:"departureDate"`
	DepartureTime string  `json:"departureTime"`
	ArrivalDate   string  `json:"arrivalDate,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Airline       string  `json:"airline,omitempty"`
	FlightNumber  string  `json:"flightNumber,omitempty"`
	From          string  `json:"from,omitempty"`
	FromCity      string  `json:"fromCity,omitempty"`
	To            string  `json:"to,omitempty"`
	ToCity        string  `json:"toCity,omitempty"`
}

// FlightInput is the caller-supplied content of a flight for add and update.
type FlightInput struct {
	Segment       Segment
	DepartureDate string
	DepartureTime string
	ArrivalDate   string
	ArrivalTime   string
	Airline       string
	FlightNumber  string
	From          string
	FromCity      string
	To            string
	ToCity        string
}
