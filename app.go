package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"mooncalendar/calendar"
	"mooncalendar/config"
	"mooncalendar/logger"
	"mooncalendar/moon"
	"mooncalendar/render"
	"mooncalendar/scheduler"
)

type publisher interface {
	Publish(r calendar.Report) error
}

// app wires the configured ephemeris, renderers and optional publisher.
type app struct {
	cfg       config.Config
	builder   *calendar.Builder
	stdout    io.Writer
	publisher publisher
}

func newApp(cfg config.Config, stdout io.Writer) (*app, error) {
	eph, ok := moon.EphemerisByName(cfg.Ephemeris)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ephemeris %q", config.ErrInvalidConfig, cfg.Ephemeris)
	}

	builder := calendar.NewBuilder(moon.NewOracle(eph))
	if cfg.HasLocation {
		builder = builder.WithLocation(calendar.Location{Latitude: cfg.Latitude, Longitude: cfg.Longitude})
	}

	return &app{cfg: cfg, builder: builder, stdout: stdout}, nil
}

// reportMonth() returns the configured month, falling back to the month of now
func (a *app) reportMonth(now time.Time) (int, time.Month) {
	if a.cfg.ReportYear != 0 {
		return a.cfg.ReportYear, a.cfg.ReportMonth
	}
	return now.Year(), now.Month()
}

// report() builds one month, writes it to stdout, then saves the chart and
// publishes. Stdout is written before anything that can fail on rendering.
func (a *app) report(now time.Time) error {
	year, month := a.reportMonth(now)
	log := logger.Log.WithFields(logrus.Fields{"year": year, "month": int(month), "ephemeris": a.cfg.Ephemeris})

	log.Info("Building moon phase calendar")
	r, err := a.builder.Build(year, month)
	if err != nil {
		return err
	}
	log.WithField("principal", len(r.Records.Principal())).Debug("Calendar built")

	switch a.cfg.OutputFormat {
	case config.FormatYAML:
		err = render.WriteYAML(a.stdout, r)
	default:
		err = render.WriteTable(a.stdout, r)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if path := a.cfg.ChartFile(year, month); path != "" {
		if err := render.SaveChart(r, path); err != nil {
			return fmt.Errorf("save chart %s: %w", path, err)
		}
		log.WithField("path", path).Info("Chart saved")
	}

	if a.publisher != nil {
		return a.publisher.Publish(r)
	}
	return nil
}

// publishCurrent() is the cron job: it publishes the month of the tick.
func (a *app) publishCurrent(now time.Time) error {
	r, err := a.builder.Build(now.Year(), now.Month())
	if err != nil {
		return err
	}
	return a.publisher.Publish(r)
}

// serve() republishes on the configured cron schedule until ctx is done.
func (a *app) serve(ctx context.Context) error {
	s, err := scheduler.Start(a.cfg.CronExpression, a.publishCurrent)
	if err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()
	logger.Log.Info("Scheduler stopped")
	return nil
}
