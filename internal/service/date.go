package service

import (
	"strings"
	"time"

	"studylog/backend/internal/logger"
)

const (
	isoLayout      = "2006-01-02"
	dayFirstLayout = "02-01-2006"
	displayLayout  = "January 02, 2006"
)

// CalendarDate is a day without time of day.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{year: y, month: m, day: d}
}

func (d CalendarDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// ISO returns the date as YYYY-MM-DD.
func (d CalendarDate) ISO() string {
	return d.Time().Format(isoLayout)
}

// Display returns the long form, e.g. "November 20, 2025".
func (d CalendarDate) Display() string {
	return d.Time().Format(displayLayout)
}

// NormalizeDate parses raw as YYYY-MM-DD, then DD-MM-YYYY. Empty input yields
// the date of now; so does anything unparseable, which is logged.
func NormalizeDate(raw string, now time.Time) CalendarDate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dateOf(now)
	}
	for _, layout := range []string{isoLayout, dayFirstLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOf(t)
		}
	}
	logger.Warn("unparseable date, using today",
		"module", "service",
		"action", "normalize",
		"resource", "date",
		"result", "fallback",
		"raw", raw,
	)
	return dateOf(now)
}
