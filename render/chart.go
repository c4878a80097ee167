package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mooncalendar/calendar"
)

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 8 * vg.Inch
	labelOffset = 0.03
)

var (
	ErrEmptyReport = errors.New("render: report has no records")

	curveColor  = color.RGBA{B: 255, A: 255}
	markerColor = color.RGBA{R: 255, A: 255}
)

// NewChart plots phase fraction against day of month. Days on a principal
// phase get a red marker labelled with the day and phase name.
func NewChart(r calendar.Report) (*plot.Plot, error) {
	if len(r.Records) == 0 {
		return nil, ErrEmptyReport
	}

	p := plot.New()
	p.Title.Text = "Moon Phases for " + r.Title()
	p.X.Label.Text = "Day of Month"
	p.Y.Label.Text = "Moon Phase"
	p.Add(plotter.NewGrid())

	curve := make(plotter.XYs, len(r.Records))
	for i, rec := range r.Records {
		curve[i].X = float64(rec.Date.Day)
		curve[i].Y = rec.Fraction
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, fmt.Errorf("phase curve: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)
	p.Legend.Add("0.0 = New Moon, 0.25 = First Quarter, 0.5 = Full Moon, 0.75 = Last Quarter", line)

	if marks, texts := principalMarks(r); len(marks) > 0 {
		scatter, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, fmt.Errorf("phase markers: %w", err)
		}
		scatter.GlyphStyle.Color = markerColor
		scatter.GlyphStyle.Radius = vg.Points(5)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		labels, err := newMarkerLabels(marks, texts)
		if err != nil {
			return nil, fmt.Errorf("phase labels: %w", err)
		}
		p.Add(scatter, labels)
		p.Legend.Add("Principal phase", scatter)
	}

	// Limits are set last because Add widens the axes to fit the data.
	p.X.Min = 1
	p.X.Max = float64(r.Days())
	p.Y.Min = 0
	p.Y.Max = 1

	return p, nil
}

// principalMarks returns the marker positions and labels for days on a
// principal phase.
func principalMarks(r calendar.Report) (plotter.XYs, []string) {
	principal := r.Records.Principal()
	marks := make(plotter.XYs, len(principal))
	texts := make([]string, len(principal))
	for i, rec := range principal {
		marks[i].X = float64(rec.Date.Day)
		marks[i].Y = rec.Fraction
		texts[i] = fmt.Sprintf("%d: %s", rec.Date.Day, rec.Phase)
	}
	return marks, texts
}

// newMarkerLabels places each label just above its marker, or just below
// when it would run past the top of the chart.
func newMarkerLabels(marks plotter.XYs, texts []string) (*plotter.Labels, error) {
	at := make(plotter.XYs, len(marks))
	below := make([]bool, len(marks))
	for i, m := range marks {
		at[i].X = m.X
		if m.Y+labelOffset > 1-labelOffset {
			at[i].Y = m.Y - labelOffset
			below[i] = true
		} else {
			at[i].Y = m.Y + labelOffset
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: at, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		if below[i] {
			labels.TextStyle[i].YAlign = draw.YTop
		} else {
			labels.TextStyle[i].YAlign = draw.YBottom
		}
	}
	return labels, nil
}

// SaveChart renders the chart to path. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func SaveChart(r calendar.Report, path string) error {
	p, err := NewChart(r)
	if err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

// ChartPNG renders the chart as PNG bytes.
func ChartPNG(r calendar.Report) ([]byte, error) {
	p, err := NewChart(r)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
