package domain

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// AvailabilityRule describes when a pro is available for lessons.
// Either a recurring weekday rule (DayOfWeek set, Recurring true) or a
// one-off override for a specific calendar date (SpecificDate set).
// A one-off entry replaces the recurring windows for that day.
type AvailabilityRule struct {
	ID           int64
	ProID        int64
	DayOfWeek    *int       // 0 (Sunday) - 6 (Saturday), nil for one-off rules
	SpecificDate *time.Time // date-only, nil for recurring rules
	StartTime    string     // "HH:MM", local to the pro's schedule
	EndTime      string     // "HH:MM", must be after StartTime
	Recurring    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppliesTo returns true if the rule produces a working window on the given date
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if r.SpecificDate != nil {
		y1, m1, d1 := r.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return r.Recurring && r.DayOfWeek != nil && *r.DayOfWeek == int(date.Weekday())
}

// Window materializes the rule into a concrete time range on the given date.
// Returns false if the rule's times cannot be parsed or yield an empty range.
func (r *AvailabilityRule) Window(date time.Time) (timerange.Range, bool) {
	start, ok := timeOnDate(date, r.StartTime)
	if !ok {
		return timerange.Range{}, false
	}
	end, ok := timeOnDate(date, r.EndTime)
	if !ok {
		return timerange.Range{}, false
	}
	w := timerange.Range{Start: start, End: end}
	return w, w.IsValid()
}

// BlockedInterval is a manual hold on a pro's calendar (vacation, personal
// appointment, or a hold created by calendar sync).
type BlockedInterval struct {
	ID        int64
	ProID     int64
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	Source    string // "manual" or "calendar_sync"
	CreatedAt time.Time
}

// Range returns the blocked interval as a time range.
func (b *BlockedInterval) Range() timerange.Range {
	return timerange.Range{Start: b.StartAt, End: b.EndAt}
}

// Blocked interval sources
const (
	BlockSourceManual       = "manual"
	BlockSourceCalendarSync = "calendar_sync"
)

// timeOnDate combines a "HH:MM" wall-clock time with a calendar date
func timeOnDate(date time.Time, hhmm string) (time.Time, bool) {
	parsed, err := time.Parse(TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), true
}
