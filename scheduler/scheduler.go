package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"mooncalendar/logger"
)

// Job runs once per tick with the tick time.
type Job func(now time.Time) error

// Start registers job on a cron schedule evaluated in UTC and starts the
// scheduler in the background. Job errors are logged and do not stop the
// schedule. Call Stop on the returned scheduler to shut it down.
func Start(cronExpression string, job Job) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Cron(cronExpression).Do(func() {
		now := time.Now().UTC()
		logger.Log.WithField("tick", now.Format(time.RFC3339)).Info("Starting cron job")
		if err := job(now); err != nil {
			logger.Log.WithError(err).Error("Cron job failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: cron %q: %w", cronExpression, err)
	}

	s.StartAsync()
	logger.Log.WithField("cron", cronExpression).Info("Background cron job activated")
	return s, nil
}
