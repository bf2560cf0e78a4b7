package report

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Granularity is the report bucketing unit
type Granularity string

const (
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
)

// IsValid checks if the granularity is valid
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityYear, GranularityMonth, GranularityWeek:
		return true
	}
	return false
}

// String returns the string representation of Granularity
func (g Granularity) String() string {
	return string(g)
}

// Period is a half-open [Start, End) reporting window with navigable
// previous/next labels.
type Period struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
	Label       string
	Previous    string
	Next        string
}

// PeriodFor computes the period containing date at the given granularity.
//
// year:  Jan 1 .. Jan 1 of the next year; prev/next labeled YYYY.
// month: first of the month .. first of the next month; prev/next YYYY-MM.
// week:  Monday of the containing week (Sunday goes back six days) .. +7d;
//        prev/next are the adjacent weeks' Mondays, YYYY-MM-DD.
func PeriodFor(date time.Time, g Granularity) (Period, error) {
	if !g.IsValid() {
		return Period{}, shared.NewDomainError("INVALID_GRANULARITY", "Granularity must be year, month or week")
	}

	loc := date.Location()
	switch g {
	case GranularityYear:
		start := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Period{
			Start:       start,
			End:         start.AddDate(1, 0, 0),
			Granularity: g,
			Label:       start.Format("2006"),
			Previous:    start.AddDate(-1, 0, 0).Format("2006"),
			Next:        start.AddDate(1, 0, 0).Format("2006"),
		}, nil

	case GranularityMonth:
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
		return Period{
			Start:       start,
			End:         start.AddDate(0, 1, 0),
			Granularity: g,
			Label:       start.Format("2006-01"),
			Previous:    start.AddDate(0, -1, 0).Format("2006-01"),
			Next:        start.AddDate(0, 1, 0).Format("2006-01"),
		}, nil

	default: // GranularityWeek
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		back := int(day.Weekday()) - 1
		if day.Weekday() == time.Sunday {
			back = 6
		}
		start := day.AddDate(0, 0, -back)
		return Period{
			Start:       start,
			End:         start.AddDate(0, 0, 7),
			Granularity: g,
			Label:       start.Format("2006-01-02"),
			Previous:    start.AddDate(0, 0, -7).Format("2006-01-02"),
			Next:        start.AddDate(0, 0, 7).Format("2006-01-02"),
		}, nil
	}
}

// SubPeriodKey returns the bucket key a transaction date falls into:
// YYYY-MM for year granularity, the literal YYYY-MM-DD otherwise.
func (p Period) SubPeriodKey(date time.Time) string {
	if p.Granularity == GranularityYear {
		return date.Format("2006-01")
	}
	return date.Format("2006-01-02")
}

// SubPeriods walks every sub-period key in [Start, End) in order. The
// result is gap-free: 12 keys for a year, days-in-month for a month,
// 7 for a week.
func (p Period) SubPeriods() []string {
	var keys []string
	if p.Granularity == GranularityYear {
		for cur := p.Start; cur.Before(p.End); cur = cur.AddDate(0, 1, 0) {
			keys = append(keys, cur.Format("2006-01"))
		}
		return keys
	}
	for cur := p.Start; cur.Before(p.End); cur = cur.AddDate(0, 0, 1) {
		keys = append(keys, cur.Format("2006-01-02"))
	}
	return keys
}

// Contains reports whether date falls inside [Start, End)
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && date.Before(p.End)
}
