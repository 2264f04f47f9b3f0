// internal/infra/telegram/lunar_handlers.go
package telegram

import (
	"errors"
	"fmt"

	"lunar_tracker_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	phaseUsage    = "Usage: /phase YYYY-MM-DD"
	calendarUsage = "Usage: /calendar [YYYY-MM]"
)

// RegisterLunarHandlers registers the phase lookup commands and the inline calendar callbacks.
func RegisterLunarHandlers(b *telebot.Bot, lunar *app.LunarService, baseLogger *logrus.Entry) {
	lunarLogger := baseLogger.WithField("handler_group", "lunar")

	b.Handle("/today", func(c telebot.Context) error {
		logCtx := lunarLogger.WithFields(logrus.Fields{"command": "/today", "chat_id": c.Chat().ID})
		view := lunar.Today()
		logCtx.WithField("phase", view.Phase).Info("Processing /today command")
		return c.Send(FormatDay(view))
	})

	b.Handle("/phase", func(c telebot.Context) error {
		logCtx := lunarLogger.WithFields(logrus.Fields{"command": "/phase", "chat_id": c.Chat().ID})

		args := c.Args()
		if len(args) != 1 {
			logCtx.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send(phaseUsage)
		}

		date, err := lunar.ParseDate(args[0])
		if err != nil {
			logCtx.WithError(err).Warn("Rejected date argument")
			return c.Send(fmt.Sprintf("%q is not a valid date.\n%s", args[0], phaseUsage))
		}

		view := lunar.Day(date)
		logCtx.WithFields(logrus.Fields{"date": args[0], "phase": view.Phase}).Info("Phase looked up")
		return c.Send(FormatDay(view))
	})

	b.Handle("/calendar", func(c telebot.Context) error {
		logCtx := lunarLogger.WithFields(logrus.Fields{"command": "/calendar", "chat_id": c.Chat().ID})

		month := lunar.CurrentMonth()
		args := c.Args()
		switch len(args) {
		case 0:
		case 1:
			m, err := lunar.ParseMonth(args[0])
			if err != nil {
				logCtx.WithError(err).Warn("Rejected month argument")
				return c.Send(fmt.Sprintf("%q is not a valid month.\n%s", args[0], calendarUsage))
			}
			month = m
		default:
			return c.Send(calendarUsage)
		}

		view := lunar.Month(month, nil)
		logCtx.WithField("month", month.String()).Info("Calendar rendered")
		return c.Send(FormatMonthHeader(view), CalendarMarkup(view))
	})

	b.Handle("/upcoming", func(c telebot.Context) error {
		lunarLogger.WithFields(logrus.Fields{"command": "/upcoming", "chat_id": c.Chat().ID}).Info("Processing /upcoming command")
		return c.Send(FormatUpcoming(lunar.Upcoming()))
	})

	b.Handle(&telebot.Btn{Unique: uniqueCalendarMonth}, func(c telebot.Context) error {
		month, err := lunar.ParseMonth(c.Data())
		if err != nil {
			c.Bot().OnError(fmt.Errorf("invalid calendar month callback %q: %w", c.Data(), err), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown month."})
		}

		view := lunar.Month(month, nil)
		if err := c.Edit(FormatMonthHeader(view), CalendarMarkup(view)); err != nil && !errors.Is(err, telebot.ErrSameMessageContent) {
			return err
		}
		return c.Respond()
	})

	b.Handle(&telebot.Btn{Unique: uniqueCalendarDay}, func(c telebot.Context) error {
		date, err := lunar.ParseDate(c.Data())
		if err != nil {
			c.Bot().OnError(fmt.Errorf("invalid calendar day callback %q: %w", c.Data(), err), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown date."})
		}

		day := lunar.Day(date)
		view := lunar.Month(app.MonthOf(date), &date)
		text := FormatMonthHeader(view) + "\n\n" + FormatDay(day)
		if err := c.Edit(text, CalendarMarkup(view)); err != nil && !errors.Is(err, telebot.ErrSameMessageContent) {
			return err
		}
		return c.Respond(&telebot.CallbackResponse{Text: day.Details.Name})
	})

	b.Handle(&telebot.Btn{Unique: uniqueCalendarNoop}, func(c telebot.Context) error {
		return c.Respond()
	})

	// Fallback for callbacks no unique handler claimed.
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		c.Bot().OnError(fmt.Errorf("unhandled callback data: %q", c.Callback().Data), c)
		return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
	})
}
