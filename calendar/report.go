package calendar

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"mooncalendar/moon"
)

// PhaseOracle returns the fraction of the lunar cycle elapsed at an instant.
type PhaseOracle interface {
	PhaseFraction(t time.Time) (float64, error)
}

// Location is an observer position in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// PhaseRecord is the Moon's phase on a single day.
type PhaseRecord struct {
	Date     Date
	Fraction float64
	Phase    moon.Phase
	// Sunset is in UTC. It is zero when no location is set or the sun
	// does not set that day.
	Sunset time.Time
}

// Percent returns the phase fraction as a percentage.
func (r PhaseRecord) Percent() float64 {
	return r.Fraction * 100
}

type PhaseRecords []PhaseRecord

// Principal returns the records that fall on a new moon, first quarter,
// full moon or last quarter.
func (rs PhaseRecords) Principal() PhaseRecords {
	principal := PhaseRecords{}
	for _, r := range rs {
		if r.Phase.IsPrincipal() {
			principal = append(principal, r)
		}
	}
	return principal
}

// Report holds one PhaseRecord per day of a month, in date order.
type Report struct {
	Year     int
	Month    time.Month
	Records  PhaseRecords
	Location *Location
}

// Title returns the month in long form, e.g. "February 2024".
func (r Report) Title() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}

// Days returns the number of days covered by the report.
func (r Report) Days() int {
	return len(r.Records)
}

// Builder assembles monthly reports from a PhaseOracle.
type Builder struct {
	oracle   PhaseOracle
	location *Location
}

// NewBuilder returns a Builder that asks oracle for each day's phase.
func NewBuilder(oracle PhaseOracle) *Builder {
	return &Builder{oracle: oracle}
}

// WithLocation returns a copy of b that also computes sunset at loc.
func (b *Builder) WithLocation(loc Location) *Builder {
	c := *b
	c.location = &loc
	return &c
}

// Build returns the phase of the Moon for every day of month in year.
func (b *Builder) Build(year int, month time.Month) (Report, error) {
	if err := validate(year, month); err != nil {
		return Report{}, err
	}

	start := Date{Year: year, Month: month, Day: 1}
	days := daysIn(year, month)

	records := make(PhaseRecords, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDays(i)

		fraction, err := b.oracle.PhaseFraction(date.Time())
		if err != nil {
			return Report{}, fmt.Errorf("phase for %s: %w", date, err)
		}
		phase, err := moon.Classify(fraction)
		if err != nil {
			return Report{}, fmt.Errorf("classify %s: %w", date, err)
		}

		record := PhaseRecord{Date: date, Fraction: fraction, Phase: phase}
		if b.location != nil {
			_, set := sunrise.SunriseSunset(b.location.Latitude, b.location.Longitude, date.Year, date.Month, date.Day)
			record.Sunset = set
		}
		records = append(records, record)
	}

	return Report{Year: year, Month: month, Records: records, Location: b.location}, nil
}
