// Package calendar builds the month grid shown on the top page: seven
// Monday-first columns, complete weeks, at most one event badge per
// day.
package calendar

import (
	"fmt"
	"time"

	"live-reservation/internal/models"
)

// Weekday indexes under Monday-first numbering.
const (
	saturdayIndex = 5
	sundayIndex   = 6
)

// Day is one grid cell. Num is 0 for blank cells padding the first and
// last weeks.
type Day struct {
	Num     int                  `json:"num"`
	Date    string               `json:"date,omitempty"`
	Event   *models.EventSummary `json:"event,omitempty"`
	Classes []string             `json:"classes,omitempty"`
	Holiday string               `json:"holiday,omitempty"`
}

// Month is the grid for one (year, month) view.
type Month struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Weeks [][]Day `json:"weeks"`
}

// Build produces the grid for a year/month, annotating populated days
// from eventsByDate. The caller resolves which event represents a date
// when several exist (see event.EventsByDate).
func Build(year, month int, eventsByDate map[string]models.EventSummary) (*Month, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month out of range: %d", month)
	}

	holidays := Holidays(year)
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 12, 0, 0, 0, time.UTC).Day()
	first := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	// Monday-first index of the 1st: Monday=0 ... Sunday=6.
	leading := (int(first.Weekday()) + 6) % 7

	var weeks [][]Day
	week := make([]Day, 0, 7)

	for i := 0; i < leading; i++ {
		week = append(week, Day{})
	}

	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, dayNum)
		day := Day{Num: dayNum, Date: date}

		idx := len(week)
		if name, ok := holidays[date]; ok {
			day.Classes = append(day.Classes, "holiday")
			day.Holiday = name
		}
		if idx == saturdayIndex {
			day.Classes = append(day.Classes, "saturday")
		}
		if idx == sundayIndex {
			day.Classes = append(day.Classes, "sunday")
		}

		if ev, ok := eventsByDate[date]; ok {
			summary := ev
			day.Event = &summary
		}

		week = append(week, day)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Day, 0, 7)
		}
	}

	// Pad the trailing week so every row has seven cells.
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		weeks = append(weeks, week)
	}

	return &Month{Year: year, Month: month, Weeks: weeks}, nil
}
