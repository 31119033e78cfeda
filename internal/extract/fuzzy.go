package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`)
	dayMonthPattern    = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s*(?:of\s+)?(` + monthNames + `)\b(?:,?\s*(\d{4})\b)?`)
	monthDayPattern    = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4})\b)?`)
	monthOnlyPattern   = regexp.MustCompile(`(?i)\b(` + monthNames + `)\b`)
	ordinalPattern     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	yearPattern        = regexp.MustCompile(`\b(1[0-9]{3}|2[0-9]{3})\b`)
)

// FuzzyDate finds a calendar date anywhere in msg, ignoring the surrounding words.
// Missing parts default to the current year, January and day 1, so a message
// without any date yields January 1 of the current year. A date that does not
// exist on the calendar is an error.
//
// Recognised forms, first match wins: 2025-06-05, 6/5[/2025] (month first),
// 5th [of] June [2025], June 5th[, 2025], June [2025], 5th.
func FuzzyDate(msg string, now time.Time) (time.Time, error) {
	year, month, day := now.Year(), time.January, 1
	explicitYear := false

	switch {
	case isoDatePattern.MatchString(msg):
		m := isoDatePattern.FindStringSubmatch(msg)
		year, _ = strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		if mo < 1 || mo > 12 {
			return time.Time{}, errMonth(m[2])
		}
		month = time.Month(mo)
		explicitYear = true

	case numericDatePattern.MatchString(msg):
		m := numericDatePattern.FindStringSubmatch(msg)
		mo, _ := strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		if mo < 1 || mo > 12 {
			return time.Time{}, errMonth(m[1])
		}
		month = time.Month(mo)
		if m[3] != "" {
			year = expandYear(m[3])
			explicitYear = true
		}

	case dayMonthPattern.MatchString(msg):
		m := dayMonthPattern.FindStringSubmatch(msg)
		day, _ = strconv.Atoi(m[1])
		month = monthFromName(m[2])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			explicitYear = true
		}

	case monthDayPattern.MatchString(msg):
		m := monthDayPattern.FindStringSubmatch(msg)
		month = monthFromName(m[1])
		day, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			explicitYear = true
		}

	case monthOnlyPattern.MatchString(msg):
		month = monthFromName(monthOnlyPattern.FindStringSubmatch(msg)[1])

	case ordinalPattern.MatchString(msg):
		day, _ = strconv.Atoi(ordinalPattern.FindStringSubmatch(msg)[1])
	}

	if !explicitYear {
		if m := yearPattern.FindStringSubmatch(msg); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
	}
	return calendarDate(year, month, day)
}

func monthFromName(name string) time.Month {
	name = strings.ToLower(name)
	for full, mo := range fullMonths {
		if strings.HasPrefix(full, name[:3]) {
			return mo
		}
	}
	return time.January
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}

func errMonth(s string) error {
	return fmt.Errorf("month must be in 1..12: %s", s)
}
