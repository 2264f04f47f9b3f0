// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"lunar_tracker_bot/internal/app"
	"lunar_tracker_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Commands is the public command menu shown by Telegram clients.
var Commands = []telebot.Command{
	{Text: "today", Description: "Moon phase for today"},
	{Text: "phase", Description: "Moon phase for a date (YYYY-MM-DD)"},
	{Text: "calendar", Description: "Phase calendar for a month (YYYY-MM)"},
	{Text: "upcoming", Description: "Next new, first quarter, full and last quarter moons"},
	{Text: "subscribe", Description: "Get a message on quarter-phase days"},
	{Text: "unsubscribe", Description: "Stop quarter-phase messages"},
	{Text: "help", Description: "Show help"},
}

// HelpText returns the /help message; admins also see admin commands.
func HelpText(isAdmin bool) string {
	var helpText strings.Builder
	helpText.WriteString("Available commands:\n\n")
	for _, cmd := range Commands {
		helpText.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Text, cmd.Description))
	}
	if isAdmin {
		helpText.WriteString("\nAdmin commands:\n\n")
		helpText.WriteString("/subscribers [active|all] - List subscribed chats. Shows active chats by default.\n")
		helpText.WriteString("/alerts [days] - Phase alerts sent recently. Defaults to 30 days.\n")
	}
	return helpText.String()
}

func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig, // For AdminTelegramID
	subscriptions *app.SubscriptionService,
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		chatID := c.Chat().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("chat_id", chatID)
		logCtx.Info("Processing /start command")

		name := "stargazer"
		if c.Sender() != nil && c.Sender().FirstName != "" {
			name = c.Sender().FirstName
		}

		subscribed, err := subscriptions.IsSubscribed(ctx, chatID)
		if err != nil {
			logCtx.WithError(err).Error("Error checking subscription status for /start command")
			return c.Send(fmt.Sprintf("Hello, %s! I track the moon's phases. Use /help for the list of commands.", name))
		}

		if subscribed {
			return c.Send(fmt.Sprintf("Welcome back, %s! This chat receives quarter-phase alerts. Use /today to see tonight's moon.", name))
		}
		return c.Send(fmt.Sprintf("Hello, %s! I track the moon's phases. Try /today or /calendar, and /subscribe to hear about new and full moons.", name))
	})

	b.Handle("/help", func(c telebot.Context) error {
		isAdmin := c.Sender() != nil && c.Sender().ID == cfg.AdminTelegramID
		startHelpLogger.WithFields(logrus.Fields{
			"command":  "/help",
			"chat_id":  c.Chat().ID,
			"is_admin": isAdmin,
		}).Info("Processing /help command")
		return c.Send(HelpText(isAdmin))
	})
}
