// Package calendar lays dated events out on a month grid of whole weeks.
package calendar

import (
	"time"

	apperrors "equipment-dashboard/pkg/errors"
)

const dateLayout = "2006-01-02"

const (
	SourceMaintenance = "maintenance"
	SourceEvent       = "event"
)

// Event is the normalized calendar entry; Date is a YYYY-MM-DD string.
type Event struct {
	Date       string `json:"date"`
	Title      string `json:"title"`
	Priority   string `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
	SourceType string `json:"source_type"`
	SourceID   uint64 `json:"source_id"`
}

type Day struct {
	Date           string  `json:"date"`
	Day            int     `json:"day"`
	IsCurrentMonth bool    `json:"is_current_month"`
	IsToday        bool    `json:"is_today"`
	Events         []Event `json:"events"`
}

// GridRange returns the first (Sunday) and last (Saturday) date of the grid for a month.
func GridRange(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("month must be between 1 and 12, got %d", int(month))
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end, nil
}

// BuildMonth returns the month grid with events bucketed by exact date. Events keep
// their input order, are not deduplicated, and are dropped when they fall outside the
// grid. now is the only clock and marks IsToday.
func BuildMonth(year int, month time.Month, events []Event, now time.Time) ([]Day, error) {
	start, end, err := GridRange(year, month)
	if err != nil {
		return nil, err
	}

	today := now.Format(dateLayout)
	days := make([]Day, 0, 42)
	index := make(map[string]int, 42)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(days)
		days = append(days, Day{
			Date:           key,
			Day:            d.Day(),
			IsCurrentMonth: d.Month() == month,
			IsToday:        key == today,
			Events:         []Event{},
		})
	}

	for _, ev := range events {
		if i, ok := index[ev.Date]; ok {
			days[i].Events = append(days[i].Events, ev)
		}
	}

	return days, nil
}

// Weeks splits a grid into 7-day rows.
func Weeks(days []Day) [][]Day {
	weeks := make([][]Day, 0, len(days)/7)
	for i := 0; i+7 <= len(days); i += 7 {
		weeks = append(weeks, days[i:i+7])
	}
	return weeks
}
