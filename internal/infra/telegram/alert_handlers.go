package telegram

import (
	"context"
	"strconv"
	"time"

	"lunar_tracker_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const defaultAlertHistoryDays = 30

// RegisterAlertHandlers registers the admin /alerts history command.
func RegisterAlertHandlers(ctx context.Context, b *telebot.Bot, adminID int64, alerts *app.AlertServiceImpl, baseLogger *logrus.Entry) {
	b.Handle("/alerts", func(c telebot.Context) error {
		if c.Sender() == nil {
			return nil
		}
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/alerts",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to use this command.")
		}

		days := defaultAlertHistoryDays
		if args := c.Args(); len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				handlerLogger.WithField("arg", args[0]).Warn("Invalid days argument")
				return c.Send("Usage: /alerts [days]")
			}
			days = n
		}

		list, err := alerts.RecentAlerts(ctx, time.Now(), days)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to load alert history")
			return c.Send("Could not load alert history. Please try again later.")
		}

		handlerLogger.WithFields(logrus.Fields{"days": days, "alerts_count": len(list)}).Info("Alert history listed")
		return c.Send(FormatAlerts(days, list))
	})
}
