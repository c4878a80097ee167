package moon

import (
	"fmt"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Ephemeris reports where the Moon is in its synodic cycle at an instant,
// as a percentage: 0 is new, 50 is full, 100 wraps back to new.
type Ephemeris interface {
	PhasePercent(t time.Time) (float64, error)
}

// SuncalcEphemeris computes the phase from the Moon and Sun positions.
type SuncalcEphemeris struct{}

// PhasePercent implements Ephemeris.
func (SuncalcEphemeris) PhasePercent(t time.Time) (float64, error) {
	illum := suncalc.GetMoonIllumination(t.UTC())
	return illum.Phase * 100.0, nil
}

// Oracle turns ephemeris percentages into phase fractions in [0, 1].
type Oracle struct {
	eph Ephemeris
}

// NewOracle returns an Oracle backed by eph.
func NewOracle(eph Ephemeris) *Oracle {
	return &Oracle{eph: eph}
}

// PhaseFraction returns the fraction of the lunar cycle elapsed at t.
// Ephemeris errors are returned as is.
func (o *Oracle) PhaseFraction(t time.Time) (float64, error) {
	percent, err := o.eph.PhasePercent(t)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return 0, fmt.Errorf("%w: ephemeris returned %v%% for %s", ErrFractionOutOfRange, percent, t.Format(time.DateOnly))
	}
	return percent / 100.0, nil
}

// EphemerisByName returns the ephemeris registered under name ("suncalc" or "mean").
func EphemerisByName(name string) (Ephemeris, bool) {
	switch name {
	case "suncalc":
		return SuncalcEphemeris{}, true
	case "mean":
		return MeanEphemeris{}, true
	}
	return nil, false
}
