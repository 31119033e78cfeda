package chat

import "strings"

type Intent int

const (
	GeneralFallback Intent = iota
	FlightIntent
	HotelIntent
)

func (i Intent) String() string {
	switch i {
	case FlightIntent:
		return "flight"
	case HotelIntent:
		return "hotel"
	}
	return "fallback"
}

type rule struct {
	intent   Intent
	keywords []string
}

// rules are checked in order against the lowercased message; the first rule
// with any keyword as a substring wins.
var rules = []rule{
	{FlightIntent, []string{"flight", "book ticket", "airfare"}},
	{HotelIntent, []string{"hotel", "stay", "accommodation"}},
}

func Classify(msg string) Intent {
	lower := strings.ToLower(msg)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return GeneralFallback
}
