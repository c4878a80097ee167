package calendar

import (
	"fmt"
	"time"
)

// Date is a calendar date without time of day or time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the reference instant of the date, 00:00 UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// String returns the ISO 8601 form, e.g. 2024-02-29.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) (int, error) {
	if err := validate(year, month); err != nil {
		return 0, err
	}
	return daysIn(year, month), nil
}

// daysIn counts the days between the first of month and the first of the
// following month. time.Date rolls December into January of the next year.
func daysIn(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return int(firstOfNext.Sub(first).Hours() / 24)
}

func validate(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}
