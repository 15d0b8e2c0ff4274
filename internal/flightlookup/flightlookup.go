// Package flightlookup fills in flight details from the flightapi.io
// schedule service given an airline, a flight number and a day.
package flightlookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const defaultBaseURL = "https://api.flightapi.io"

// ErrDisabled is returned by Lookup when no API key is configured.
var ErrDisabled = errors.New("flight lookup is not configured")

// UpstreamError reports a non-2xx answer from the schedule service.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("flight lookup: upstream status %d: %s", e.Status, msg)
}

var (
	iataCode   = regexp.MustCompile(`\b[A-Z0-9]{2,3}\b`)
	nonDigits  = regexp.MustCompile(`[^0-9]`)
	datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
	clockPart  = regexp.MustCompile(`T(\d{2}:\d{2})`)
)

// Query identifies one scheduled flight.
type Query struct {
	// Airline is free text such as "TAP Air Portugal (TP)" or "tp".
	Airline string
	// AirlineIATA, when set, overrides the code found in Airline.
	AirlineIATA string
	// FlightNumber may carry a carrier prefix; only its digits are used.
	FlightNumber string
	// Date is the departure day, YYYY-MM-DD.
	Date string
}

// Result is what the schedule service knows about a flight. Empty fields
// were not reported.
type Result struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	DepartureDate string `json:"departureDate,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalDate   string `json:"arrivalDate,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	From          string `json:"from,omitempty"`
	FromCity      string `json:"fromCity,omitempty"`
	To            string `json:"to,omitempty"`
	ToCity        string `json:"toCity,omitempty"`
	// Partial is set when departure date, departure time, origin or
	// destination is missing and the caller should confirm the details.
	Partial bool `json:"partial"`
}

// FlightInput converts the result into store input with the given segment.
func (r Result) FlightInput(segment domain.Segment) domain.FlightInput {
	return domain.FlightInput{
		Segment:       segment,
		DepartureDate: r.DepartureDate,
		DepartureTime: r.DepartureTime,
		ArrivalDate:   r.ArrivalDate,
		ArrivalTime:   r.ArrivalTime,
		Airline:       r.Airline,
		FlightNumber:  r.FlightNumber,
		From:          r.From,
		FromCity:      r.FromCity,
		To:            r.To,
		ToCity:        r.ToCity,
	}
}

// Client talks to flightapi.io.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// NewClient returns a Client for apiKey. An empty key disables lookups.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Lookup fetches the schedule for q.
//
// Errors: ErrDisabled without a key, domain.ErrValidation when airline,
// flight number or date is missing, domain.ErrNotFound when the service has
// no such flight, and *UpstreamError for non-2xx answers.
func (c *Client) Lookup(ctx context.Context, q Query) (Result, error) {
	if !c.Enabled() {
		return Result{}, ErrDisabled
	}

	iata := strings.ToUpper(strings.TrimSpace(q.AirlineIATA))
	if iata == "" {
		iata = iataCode.FindString(strings.ToUpper(q.Airline))
	}
	number := nonDigits.ReplaceAllString(q.FlightNumber, "")
	date := strings.TrimSpace(q.Date)
	if iata == "" || number == "" || date == "" {
		return Result{}, fmt.Errorf("%w: airline, flight number and flight day (YYYY-MM-DD) are required", domain.ErrValidation)
	}

	params := url.Values{}
	params.Set("num", number)
	params.Set("name", iata)
	params.Set("date", strings.ReplaceAll(date, "-", ""))
	endpoint := c.baseURL + "/airline/" + url.PathEscape(c.apiKey) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("flightlookup.Client.Lookup: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("flightlookup.Client.Lookup: %w", err)
	}
	defer resp.Body.Close()

	var body any
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := lookupString(body, "$.message")
		return Result{}, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return Result{}, fmt.Errorf("flightlookup.Client.Lookup: decode: %w", decodeErr)
	}

	list, ok := body.([]any)
	if !ok || len(list) == 0 {
		return Result{}, fmt.Errorf("flightlookup.Client.Lookup: %s%s on %s: %w", iata, number, date, domain.ErrNotFound)
	}

	dep := section(list, "departure")
	arr := section(list, "arrival")

	out := Result{
		Airline:      strings.TrimSpace(q.Airline),
		FlightNumber: iata + number,
	}
	if out.Airline == "" {
		out.Airline = iata
	}

	depAt, _ := lookupString(dep, "$.departureDateTime", "$.scheduledDateTime", "$.estimatedDateTime")
	arrAt, _ := lookupString(arr, "$.arrivalDateTime", "$.scheduledDateTime", "$.estimatedDateTime")
	out.DepartureDate = submatch(datePrefix, depAt)
	out.DepartureTime = submatch(clockPart, depAt)
	out.ArrivalDate = submatch(datePrefix, arrAt)
	out.ArrivalTime = submatch(clockPart, arrAt)

	out.From, _ = lookupString(dep, "$.airportCode")
	out.FromCity, _ = lookupString(dep, "$.airportCity")
	out.To, _ = lookupString(arr, "$.airportCode")
	out.ToCity, _ = lookupString(arr, "$.airportCity")

	out.Partial = out.DepartureDate == "" || out.DepartureTime == "" || out.From == "" || out.To == ""
	if out.Partial {
		c.log.InfoContext(ctx, "flight lookup returned partial details", "flight", out.FlightNumber, "date", date)
	}
	return out, nil
}

// section returns the named object of the first element carrying one. The
// service answers with separate departure and arrival elements.
func section(list []any, name string) any {
	path := "$." + name
	for _, el := range list {
		if v, err := jsonpath.Get(path, el); err == nil && v != nil {
			return v
		}
	}
	return nil
}

// lookupString returns the first non-blank string found at any of paths.
func lookupString(obj any, paths ...string) (string, bool) {
	if obj == nil {
		return "", false
	}
	for _, p := range paths {
		v, err := jsonpath.Get(p, obj)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

func submatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
