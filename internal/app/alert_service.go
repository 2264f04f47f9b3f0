// internal/app/alert_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lunar_tracker_bot/internal/domain/alert"
	"lunar_tracker_bot/internal/domain/moon"
	"lunar_tracker_bot/internal/domain/subscriber"
	domainTelegram "lunar_tracker_bot/internal/domain/telegram"
	idb "lunar_tracker_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// AlertService tells subscribers about quarter-phase events falling due.
type AlertService interface {
	// DispatchDailyAlerts sends every quarter event due within the lead window of now's
	// calendar day. It returns how many events were announced.
	DispatchDailyAlerts(ctx context.Context, now time.Time) (int, error)
	// DueEvents lists the events DispatchDailyAlerts would consider for now.
	DueEvents(now time.Time) []moon.Event
}

// AlertServiceImpl implements the AlertService interface.
type AlertServiceImpl struct {
	calc           moon.Calculator
	subscriberRepo subscriber.Repository
	alertRepo      alert.Repository
	sender         domainTelegram.Sender
	logger         *logrus.Entry
	location       *time.Location
	leadDays       int
}

func NewAlertServiceImpl(
	calc moon.Calculator,
	sr subscriber.Repository,
	ar alert.Repository,
	sender domainTelegram.Sender,
	logger *logrus.Entry,
	location *time.Location,
	leadDays int,
) *AlertServiceImpl {
	if location == nil {
		location = time.UTC
	}
	if leadDays < 0 {
		leadDays = 0
	}
	return &AlertServiceImpl{
		calc:           calc,
		subscriberRepo: sr,
		alertRepo:      ar,
		sender:         sender,
		logger:         logger,
		location:       location,
		leadDays:       leadDays,
	}
}

// DueEvents projects from the previous day so that an event landing exactly on
// today is still listed instead of being pushed a cycle ahead.
func (s *AlertServiceImpl) DueEvents(now time.Time) []moon.Event {
	today := moon.CalendarDay(now.In(s.location))
	events := s.calc.NextPhaseEvents(today.AddDate(0, 0, -1))

	due := make([]moon.Event, 0, len(events))
	for _, e := range events {
		days := int(e.Date.Sub(today).Hours() / 24)
		if e.Date.Before(today) || days > s.leadDays {
			continue
		}
		e.DaysAway = days
		due = append(due, e)
	}
	return due
}

func (s *AlertServiceImpl) DispatchDailyAlerts(ctx context.Context, now time.Time) (int, error) {
	due := s.DueEvents(now)
	if len(due) == 0 {
		s.logger.WithField("date", now.In(s.location).Format(dateLayout)).Debug("No quarter-phase events due")
		return 0, nil
	}

	subscribers, err := s.subscriberRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		s.logger.Info("No active subscribers. Alerts will not be sent.")
		return 0, nil
	}

	announced := 0
	for _, e := range due {
		eventLogger := s.logger.WithFields(logrus.Fields{
			"phase":      e.Phase,
			"event_date": e.Date.Format(dateLayout),
		})

		_, err := s.alertRepo.GetByPhaseAndDate(ctx, e.Phase, e.Date)
		if err == nil {
			eventLogger.Info("Alert already sent. Skipping.")
			continue
		}
		if !errors.Is(err, idb.ErrAlertNotFound) {
			return announced, fmt.Errorf("failed to check alert ledger for %s on %s: %w", e.Phase, e.Date.Format(dateLayout), err)
		}

		record := &alert.Alert{Phase: e.Phase, EventDate: e.Date}
		if err := s.alertRepo.Create(ctx, record); err != nil {
			if errors.Is(err, idb.ErrDuplicateAlert) {
				eventLogger.Info("Alert claimed concurrently. Skipping.")
				continue
			}
			return announced, fmt.Errorf("failed to record alert for %s: %w", e.Phase, err)
		}

		text := AlertText(e)
		delivered := 0
		for _, sub := range subscribers {
			if err := s.sender.SendMessage(sub.ChatID, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
				eventLogger.WithError(err).WithField("chat_id", sub.ChatID).Error("Failed to send phase alert")
				continue
			}
			delivered++
		}

		if err := s.alertRepo.UpdateRecipients(ctx, record.ID, delivered); err != nil {
			eventLogger.WithError(err).Error("Failed to store alert recipient count")
		}
		eventLogger.WithField("recipients", delivered).Info("Phase alert sent")
		announced++
	}
	return announced, nil
}

// RecentAlerts returns the ledger entries for quarter-phase alerts sent during the
// last days days, newest first.
func (s *AlertServiceImpl) RecentAlerts(ctx context.Context, now time.Time, days int) ([]*alert.Alert, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	since := now.AddDate(0, 0, -days)
	alerts, err := s.alertRepo.ListByPhases(ctx, moon.QuarterPhases(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts since %s: %w", since.Format(dateLayout), err)
	}
	return alerts, nil
}

// AlertText is the message subscribers receive for an event.
func AlertText(e moon.Event) string {
	d := moon.DetailsFor(e.Phase)
	when := "today"
	switch {
	case e.DaysAway == 1:
		when = "tomorrow"
	case e.DaysAway > 1:
		when = fmt.Sprintf("in %d days", e.DaysAway)
	}
	return fmt.Sprintf("%s %s %s (%s)\n%s\nEnergy & themes: %s",
		d.Glyph, d.Name, when, e.Date.Format("Monday, Jan 2"), d.Description, d.Energy)
}
