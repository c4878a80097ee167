package moon

import (
	"encoding"
	"fmt"
	"math"
)

// Phase is one of the eight named segments of the lunar cycle.
type Phase int

const (
	NewMoon Phase = iota + 1
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var (
	phaseNames = [...]string{
		NewMoon:        "New Moon",
		WaxingCrescent: "Waxing Crescent",
		FirstQuarter:   "First Quarter",
		WaxingGibbous:  "Waxing Gibbous",
		FullMoon:       "Full Moon",
		WaningGibbous:  "Waning Gibbous",
		LastQuarter:    "Last Quarter",
		WaningCrescent: "Waning Crescent",
	}
	phaseByName = map[string]Phase{
		"New Moon":        NewMoon,
		"Waxing Crescent": WaxingCrescent,
		"First Quarter":   FirstQuarter,
		"Waxing Gibbous":  WaxingGibbous,
		"Full Moon":       FullMoon,
		"Waning Gibbous":  WaningGibbous,
		"Last Quarter":    LastQuarter,
		"Waning Crescent": WaningCrescent,
	}
)

var (
	_ fmt.Stringer             = Phase(0)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
)

// Phases returns all phases in cycle order, starting from the new moon.
func Phases() []Phase {
	return []Phase{NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous, FullMoon, WaningGibbous, LastQuarter, WaningCrescent}
}

// String returns the display label, e.g. "First Quarter".
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.IsValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// IsValid reports whether p is one of the eight named phases.
func (p Phase) IsValid() bool {
	return p >= NewMoon && p <= WaningCrescent
}

// IsPrincipal reports whether p is one of the four phases marked on calendars.
func (p Phase) IsPrincipal() bool {
	switch p {
	case NewMoon, FirstQuarter, FullMoon, LastQuarter:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, text)
	}
	*p = v
	return nil
}

// band is a range of phase fractions mapped to a phase.
type band struct {
	min, max         float64
	minOpen, maxOpen bool
	phase            Phase
}

func (b band) contains(f float64) bool {
	if f < b.min || (b.minOpen && f == b.min) {
		return false
	}
	if f > b.max || (b.maxOpen && f == b.max) {
		return false
	}
	return true
}

// bands are evaluated in order and the first match wins. The new moon
// wraps around the cycle so it owns both ends of [0, 1].
var bands = []band{
	{min: 0, max: 0.05, maxOpen: true, phase: NewMoon},
	{min: 0.95, max: 1, minOpen: true, phase: NewMoon},
	{min: 0.05, max: 0.20, maxOpen: true, phase: WaxingCrescent},
	{min: 0.20, max: 0.30, maxOpen: true, phase: FirstQuarter},
	{min: 0.30, max: 0.45, maxOpen: true, phase: WaxingGibbous},
	{min: 0.45, max: 0.55, maxOpen: true, phase: FullMoon},
	{min: 0.55, max: 0.70, maxOpen: true, phase: WaningGibbous},
	{min: 0.70, max: 0.80, maxOpen: true, phase: LastQuarter},
	{min: 0.80, max: 0.95, phase: WaningCrescent},
}

// Classify maps a phase fraction in [0, 1] to its named phase.
// NaN and values outside [0, 1] return ErrFractionOutOfRange.
func Classify(fraction float64) (Phase, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: %v", ErrFractionOutOfRange, fraction)
	}
	for _, b := range bands {
		if b.contains(fraction) {
			return b.phase, nil
		}
	}
	// unreachable: bands cover [0, 1]
	return 0, fmt.Errorf("%w: %v", ErrFractionOutOfRange, fraction)
}
