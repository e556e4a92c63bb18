package model

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf strips the time-of-day component, returning the calendar date of t
// in its own location as midnight UTC. All DueDate/Date columns are stored in
// this normalized form so equality and BETWEEN queries work on dates.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

// AddDays shifts a calendar date by n days using calendar-aware arithmetic,
// so month and year boundaries roll over correctly.
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date.AddDate(0, 0, n))
}

// WindowStart returns the start of a trailing window of `days` calendar
// dates ending at (and including) end.
func WindowStart(end time.Time, days int) time.Time {
	return AddDays(end, -(days - 1))
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
