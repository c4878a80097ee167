package render

import (
	"fmt"
	"io"
	"strings"

	"mooncalendar/calendar"
)

const (
	ruleWidth   = 50
	sunsetWidth = 8
	noSunset    = "--"
)

// Table returns the report as a fixed-width text table. Every column,
// the last one included, is padded to its full width.
func Table(r calendar.Report) string {
	withSunset := r.Location != nil
	width := ruleWidth
	if withSunset {
		width += sunsetWidth
	}
	rule := strings.Repeat("-", width)

	var b strings.Builder
	fmt.Fprintf(&b, "Moon Phase Calendar for %s\n", r.Title())
	b.WriteString(rule + "\n")
	header := fmt.Sprintf("%-5s%-12s%-10s%-20s", "Day", "Date", "Phase %", "Moon Phase")
	if withSunset {
		header += fmt.Sprintf("%-*s", sunsetWidth, "Sunset")
	}
	b.WriteString(header + "\n")
	b.WriteString(rule + "\n")

	for _, rec := range r.Records {
		line := fmt.Sprintf("%-5d%-12s%-10.1f%-20s", rec.Date.Day, rec.Date, rec.Percent(), rec.Phase)
		if withSunset {
			line += fmt.Sprintf("%-*s", sunsetWidth, sunsetText(rec))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// WriteTable writes Table(r) to w.
func WriteTable(w io.Writer, r calendar.Report) error {
	_, err := io.WriteString(w, Table(r))
	return err
}

func sunsetText(rec calendar.PhaseRecord) string {
	if rec.Sunset.IsZero() {
		return noSunset
	}
	return rec.Sunset.UTC().Format("15:04")
}
