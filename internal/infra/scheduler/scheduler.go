package scheduler

import (
	"context"
	"fmt"
	"time"

	"lunar_tracker_bot/internal/app" // For AlertService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const alertJobTimeout = 5 * time.Minute

type AlertScheduler struct {
	cronEngine         *cron.Cron
	alertService       app.AlertService
	logger             *logrus.Entry
	cronSpecDailyAlert string
	now                func() time.Time
}

func NewAlertScheduler(
	alertService app.AlertService,
	logger *logrus.Entry,
	location *time.Location,
	cronSpecDailyAlert string, // e.g., "0 9 * * *" (9 AM daily)
) *AlertScheduler {
	if location == nil {
		location = time.Local
	}
	return &AlertScheduler{
		cronEngine:         cron.New(cron.WithLocation(location)),
		alertService:       alertService,
		logger:             logger,
		cronSpecDailyAlert: cronSpecDailyAlert,
		now:                time.Now,
	}
}

// Start registers the jobs and starts the cron engine.
func (s *AlertScheduler) Start() error {
	s.logger.Info("Starting alert scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDailyAlert, func() {
		s.logger.Info("Cron job triggered for daily phase alerts.")
		s.runDailyAlerts()
	})
	if err != nil {
		return fmt.Errorf("could not add daily alert cron job %q: %w", s.cronSpecDailyAlert, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpecDailyAlert).Info("Alert scheduler started with jobs.")
	return nil
}

func (s *AlertScheduler) runDailyAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), alertJobTimeout)
	defer cancel()

	sent, err := s.alertService.DispatchDailyAlerts(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("Error during daily alert dispatch")
		return
	}
	s.logger.WithField("events_announced", sent).Info("Daily alert dispatch finished.")
}

// Stop stops the scheduler and waits for running jobs.
func (s *AlertScheduler) Stop() {
	s.logger.Info("Stopping alert scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Alert scheduler gracefully stopped.")
}
