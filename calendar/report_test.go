package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mooncalendar/moon"
)

// dayOracle returns a fraction derived from the day of month, so every
// month walks through a predictable cycle.
type dayOracle struct {
	calls []time.Time
}

func (o *dayOracle) PhaseFraction(t time.Time) (float64, error) {
	o.calls = append(o.calls, t)
	return float64(t.Day()-1) / 31, nil
}

type failingOracle struct {
	failOn int
	err    error
}

func (o failingOracle) PhaseFraction(t time.Time) (float64, error) {
	if t.Day() == o.failOn {
		return 0, o.err
	}
	return 0.5, nil
}

type constOracle float64

func (c constOracle) PhaseFraction(time.Time) (float64, error) {
	return float64(c), nil
}

func TestBuildDayCount(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2024, time.January, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{9999, time.December, 31},
		{1, time.January, 31},
	}
	for _, tt := range tests {
		report, err := NewBuilder(&dayOracle{}).Build(tt.year, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, report.Days(), "%d-%02d", tt.year, tt.month)

		n, err := DaysIn(tt.year, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n)
	}
}

func TestBuildConsecutiveDates(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		report, err := NewBuilder(&dayOracle{}).Build(2023, month)
		require.NoError(t, err)
		require.NotEmpty(t, report.Records)

		for i, r := range report.Records {
			assert.Equal(t, Date{Year: 2023, Month: month, Day: i + 1}, r.Date)
			if i > 0 {
				prev := report.Records[i-1].Date
				assert.Equal(t, prev.AddDays(1), r.Date)
				assert.True(t, r.Date.Time().After(prev.Time()))
			}
		}
	}
}

func TestBuildDecemberStopsAtYearEnd(t *testing.T) {
	oracle := &dayOracle{}
	report, err := NewBuilder(oracle).Build(2024, time.December)
	require.NoError(t, err)
	require.Len(t, report.Records, 31)

	last := report.Records[len(report.Records)-1]
	assert.Equal(t, "2024-12-31", last.Date.String())
	assert.Equal(t, 31, last.Date.Day)
	for _, r := range report.Records {
		assert.NotEqual(t, "2025-01-01", r.Date.String())
	}

	// The oracle is asked at 00:00 UTC of each date.
	require.Len(t, oracle.calls, 31)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), oracle.calls[0])
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), oracle.calls[30])
}

func TestBuildClassifies(t *testing.T) {
	report, err := NewBuilder(&dayOracle{}).Build(2024, time.January)
	require.NoError(t, err)

	for _, r := range report.Records {
		want, err := moon.Classify(r.Fraction)
		require.NoError(t, err)
		assert.Equal(t, want, r.Phase, r.Date.String())
	}
	assert.Equal(t, moon.NewMoon, report.Records[0].Phase)
	assert.InDelta(t, 0, report.Records[0].Percent(), 1e-12)
}

func TestBuildIdempotent(t *testing.T) {
	b := NewBuilder(moon.NewOracle(moon.MeanEphemeris{}))
	first, err := b.Build(2024, time.March)
	require.NoError(t, err)
	second, err := b.Build(2024, time.March)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildInvalidArguments(t *testing.T) {
	b := NewBuilder(&dayOracle{})
	for _, month := range []time.Month{0, 13, -1} {
		_, err := b.Build(2024, month)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %d", month)

		_, err = DaysIn(2024, month)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	}
	for _, year := range []int{0, -5, 10000} {
		_, err := b.Build(year, time.May)
		assert.ErrorIs(t, err, ErrInvalidYear, "year %d", year)
	}
}

func TestBuildPropagatesOracleError(t *testing.T) {
	boom := errors.New("ephemeris out of range")
	_, err := NewBuilder(failingOracle{failOn: 10, err: boom}).Build(2024, time.May)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "2024-05-10")
}

func TestBuildRejectsOutOfRangeFraction(t *testing.T) {
	_, err := NewBuilder(constOracle(1.5)).Build(2024, time.May)
	assert.ErrorIs(t, err, moon.ErrFractionOutOfRange)
}

func TestPrincipal(t *testing.T) {
	report, err := NewBuilder(&dayOracle{}).Build(2024, time.January)
	require.NoError(t, err)

	principal := report.Records.Principal()
	require.NotEmpty(t, principal)
	for _, r := range principal {
		assert.True(t, r.Phase.IsPrincipal(), r.Phase.String())
	}
	assert.Equal(t, 1, principal[0].Date.Day)

	assert.Empty(t, PhaseRecords{{Phase: moon.WaxingGibbous}}.Principal())
}

func TestBuildWithLocation(t *testing.T) {
	london := Location{Latitude: 51.5074, Longitude: -0.1278}
	base := NewBuilder(constOracle(0.5))
	report, err := base.WithLocation(london).Build(2024, time.June)
	require.NoError(t, err)
	require.NotNil(t, report.Location)

	midsummer := report.Records[20]
	require.False(t, midsummer.Sunset.IsZero())
	assert.Equal(t, 21, midsummer.Sunset.Day())
	assert.True(t, midsummer.Sunset.Hour() >= 19 && midsummer.Sunset.Hour() <= 21, "sunset %s", midsummer.Sunset)

	// The base builder is left without a location.
	plain, err := base.Build(2024, time.June)
	require.NoError(t, err)
	assert.Nil(t, plain.Location)
	assert.True(t, plain.Records[0].Sunset.IsZero())
}

func TestReportTitle(t *testing.T) {
	assert.Equal(t, "February 2024", Report{Year: 2024, Month: time.February}.Title())
}

func TestDate(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, "2024-02-28", d.String())
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d.AddDays(1))
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d.AddDays(2))
	assert.Equal(t, "0001-01-01", Date{Year: 1, Month: time.January, Day: 1}.String())
	assert.Equal(t, d, DateOf(d.Time()))
}
