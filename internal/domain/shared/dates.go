package shared

import (
	"fmt"
	"time"
)

// Date layouts used for user-facing calendar values
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
	MonthLabel  = "Jan 2006"
)

// ParseDay parses a YYYY-MM-DD calendar date
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil || t.Format(DayLayout) != s {
		return time.Time{}, NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM calendar month
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil || t.Format(MonthLayout) != s {
		return time.Time{}, NewDomainError("INVALID_MONTH", fmt.Sprintf("Invalid month %q, expected YYYY-MM", s))
	}
	return t, nil
}

// MonthBounds returns the first day of the month and the first day of the
// following month, both as YYYY-MM-DD. The range is half-open.
func MonthBounds(month string) (start, nextStart string, err error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", "", err
	}
	return t.Format(DayLayout), t.AddDate(0, 1, 0).Format(DayLayout), nil
}

// DateRange is an inclusive range of YYYY-MM-DD dates
type DateRange struct {
	Start string
	End   string
}

// NewDateRange validates both ends and their order
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDay(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return DateRange{}, err
	}
	if e.Before(s) {
		return DateRange{}, NewDomainError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	return DateRange{Start: start, End: end}, nil
}
