// Package views holds pure read-side projections over store data: flight
// classification and ordering, trip bucketing, countdowns, event ordering and
// multi-currency totals.
//
// Every function that depends on the current time takes it as an explicit
// now argument; calendar days are evaluated in now's location.
package views

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	clock12       = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
	clock24       = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

// ParseTripDate parses a stored date. A leading YYYY-MM-DD is read as local
// midnight in loc; anything else must be an RFC 3339 timestamp.
func ParseTripDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if m := isoDatePrefix.FindStringSubmatch(value); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc), true
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

// ParseTripDay is ParseTripDate truncated to the start of its calendar day.
func ParseTripDay(value string, loc *time.Location) (time.Time, bool) {
	t, ok := ParseTripDate(value, loc)
	if !ok {
		return time.Time{}, false
	}
	return startOfDay(t), true
}

// ParseClock reads "h:mm AM/PM" or 24-hour "HH:MM" and returns the hour and
// minute.
func ParseClock(value string) (hour, minute int, ok bool) {
	value = strings.TrimSpace(value)
	if m := clock12.FindStringSubmatch(value); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		pm := strings.EqualFold(m[3], "PM")
		switch {
		case pm && hour < 12:
			hour += 12
		case !pm && hour == 12:
			hour = 0
		}
		return hour, minute, true
	}
	if m := clock24.FindStringSubmatch(value); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute, true
	}
	return 0, 0, false
}

// ParseFlightDateTime combines a stored date and clock time into a local
// timestamp. It fails when either part does not parse.
func ParseFlightDateTime(date, clock string, loc *time.Location) (time.Time, bool) {
	day, ok := ParseTripDate(date, loc)
	if !ok {
		return time.Time{}, false
	}
	h, m, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), true
}

// DaysUntil returns the number of calendar days from now's day to date's
// day, rounded up and never negative. Unparseable dates yield 0.
func DaysUntil(date string, now time.Time) int {
	day, ok := ParseTripDay(date, now.Location())
	if !ok {
		return 0
	}
	diff := day.Sub(startOfDay(now))
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return max(0, days)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
