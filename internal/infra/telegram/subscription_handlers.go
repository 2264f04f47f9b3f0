package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lunar_tracker_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterSubscriptionHandlers registers /subscribe, /unsubscribe and the admin /subscribers listing.
func RegisterSubscriptionHandlers(ctx context.Context, b *telebot.Bot, subscriptions *app.SubscriptionService, baseLogger *logrus.Entry) {
	b.Handle("/subscribe", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler": "/subscribe",
			"chat_id": c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		firstName, username := c.Chat().FirstName, c.Chat().Username
		if c.Chat().Title != "" {
			firstName = c.Chat().Title
		}

		sub, err := subscriptions.Subscribe(ctx, c.Chat().ID, firstName, username)
		if err != nil {
			if errors.Is(err, app.ErrAlreadySubscribed) {
				handlerLogger.Info("Chat already subscribed")
				return c.Send("This chat is already subscribed to quarter-phase alerts.")
			}
			handlerLogger.WithError(err).Error("Failed to subscribe chat")
			return c.Send("Something went wrong while subscribing. Please try again later.")
		}

		handlerLogger.WithField("subscriber_id", sub.ID).Info("Chat subscribed")
		return c.Send("Subscribed! You'll get a message on new moon, first quarter, full moon and last quarter days.")
	})

	b.Handle("/unsubscribe", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler": "/unsubscribe",
			"chat_id": c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		sub, err := subscriptions.Unsubscribe(ctx, c.Chat().ID)
		if err != nil {
			if errors.Is(err, app.ErrNotSubscribed) {
				handlerLogger.Info("Chat was not subscribed")
				return c.Send("This chat is not subscribed.")
			}
			handlerLogger.WithError(err).Error("Failed to unsubscribe chat")
			return c.Send("Something went wrong while unsubscribing. Please try again later.")
		}

		handlerLogger.WithField("subscriber_id", sub.ID).Info("Chat unsubscribed")
		return c.Send("Unsubscribed. Use /subscribe any time to resume alerts.")
	})

	b.Handle("/subscribers", func(c telebot.Context) error {
		if c.Sender() == nil {
			return nil
		}
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/subscribers",
			"sender_id": c.Sender().ID,
		})

		listType := "active"
		if args := c.Args(); len(args) > 0 {
			listType = strings.ToLower(args[0])
		}
		handlerLogger = handlerLogger.WithField("list_type", listType)

		var title string
		switch listType {
		case "active":
			title = "Active subscribers"
		case "all":
			title = "All subscribers"
		default:
			handlerLogger.Warn("Invalid list type argument")
			return c.Send("Invalid argument. Use 'active' or 'all', or leave it empty to list active subscribers.")
		}

		list, err := subscriptions.ListSubscribers(ctx, c.Sender().ID, listType == "all")
		if err != nil {
			if errors.Is(err, app.ErrAdminNotAuthorized) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send("You are not allowed to use this command.")
			}
			handlerLogger.WithError(err).Error("Failed to get list of subscribers")
			return c.Send(fmt.Sprintf("Could not load subscribers: %s", err.Error()))
		}

		if len(list) == 0 {
			handlerLogger.Info("No subscribers found for the specified list type")
			return c.Send("No subscribers yet.")
		}

		handlerLogger.WithField("subscribers_count", len(list)).Info("Successfully retrieved subscriber list")
		return c.Send(FormatSubscribers(title, list))
	})
}
