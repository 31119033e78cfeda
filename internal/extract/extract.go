// Package extract pulls travel query parameters out of free-text chat messages.
// Every function here is pure: the city table and the current time are passed in.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrExtraction is returned when a message lacks the entities a query needs.
var ErrExtraction = errors.New("extraction failure")

// DefaultAdults is the guest count used when a hotel message names none.
const DefaultAdults = 2

// DateLayout is the wire format for every extracted date.
const DateLayout = "2006-01-02"

// CityTable maps a lowercase city name to its IATA code.
type CityTable map[string]string

type FlightQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type HotelQuery struct {
	CityCode string `json:"city_code"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
}

// Tokens lowercases msg, splits it on whitespace and trims surrounding punctuation.
func Tokens(msg string) []string {
	fields := strings.Fields(strings.ToLower(msg))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Cities returns the city names of msg found in the table, distinct and in message order.
func (t CityTable) Cities(msg string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, tok := range Tokens(msg) {
		if _, ok := t[tok]; ok && !seen[tok] {
			seen[tok] = true
			found = append(found, tok)
		}
	}
	return found
}

// Flight takes the first two distinct cities as origin and destination and
// parses a departure date from anywhere in the message.
func Flight(msg string, cities CityTable, now time.Time) (FlightQuery, error) {
	found := cities.Cities(msg)
	if len(found) < 2 {
		return FlightQuery{}, fmt.Errorf("%w: need two cities, found %d", ErrExtraction, len(found))
	}
	date, err := FuzzyDate(msg, now)
	if err != nil {
		return FlightQuery{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return FlightQuery{
		Origin:      cities[found[0]],
		Destination: cities[found[1]],
		Date:        date.Format(DateLayout),
	}, nil
}

// Hotel takes the first city as the destination, the first two dates as the
// stay window and the "<n> guests" count (default 2).
func Hotel(msg string, cities CityTable, now time.Time) (HotelQuery, error) {
	found := cities.Cities(msg)
	if len(found) == 0 {
		return HotelQuery{}, fmt.Errorf("%w: no city found", ErrExtraction)
	}
	dates := Dates(msg, now)
	if len(dates) < 2 {
		return HotelQuery{}, fmt.Errorf("%w: check-in/check-out date not found", ErrExtraction)
	}
	adults, ok := Number(msg, "guests")
	if !ok || adults == 0 {
		adults = DefaultAdults
	}
	return HotelQuery{
		CityCode: cities[found[0]],
		CheckIn:  dates[0],
		CheckOut: dates[1],
		Adults:   adults,
	}, nil
}

var stayDatePattern = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s*(?:of\s*)?([A-Za-z]+)(?:\s*(\d{4}))?`)

// Dates returns every "<day>[suffix] [of] <Month> [year]" date in msg as
// YYYY-MM-DD, in order. Month names must be spelled in full; candidates that
// are not real calendar dates are skipped.
func Dates(msg string, now time.Time) []string {
	var dates []string
	for _, m := range stayDatePattern.FindAllStringSubmatch(msg, -1) {
		month, ok := fullMonths[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		d, err := calendarDate(year, month, day)
		if err != nil {
			continue
		}
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// Number returns the integer immediately preceding field, case-insensitively.
func Number(msg, field string) (int, bool) {
	re, err := regexp.Compile(`(?i)(\d+)\s*` + regexp.QuoteMeta(field))
	if err != nil {
		return 0, false
	}
	m := re.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func calendarDate(year int, month time.Month, day int) (time.Time, error) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("day is out of range for month: %d %s %d", day, month, year)
	}
	return d, nil
}

var fullMonths = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}
