package render

import (
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"mooncalendar/calendar"
)

type yamlReport struct {
	Year    int          `yaml:"year"`
	Month   int          `yaml:"month"`
	Title   string       `yaml:"title"`
	Records []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	Day          int     `yaml:"day"`
	Date         string  `yaml:"date"`
	PhasePercent float64 `yaml:"phase_percent"`
	Phase        string  `yaml:"phase"`
	Principal    bool    `yaml:"principal"`
	Sunset       string  `yaml:"sunset,omitempty"`
}

// WriteYAML writes the report to w as a YAML document.
func WriteYAML(w io.Writer, r calendar.Report) error {
	doc := yamlReport{
		Year:    r.Year,
		Month:   int(r.Month),
		Title:   r.Title(),
		Records: make([]yamlRecord, 0, len(r.Records)),
	}
	for _, rec := range r.Records {
		yr := yamlRecord{
			Day:          rec.Date.Day,
			Date:         rec.Date.String(),
			PhasePercent: math.Round(rec.Percent()*10) / 10,
			Phase:        rec.Phase.String(),
			Principal:    rec.Phase.IsPrincipal(),
		}
		if r.Location != nil {
			yr.Sunset = sunsetText(rec)
		}
		doc.Records = append(doc.Records, yr)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
