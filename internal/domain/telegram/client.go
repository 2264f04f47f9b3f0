package telegram

import "gopkg.in/telebot.v3"

// Sender delivers text messages to Telegram chats.
// Services depend on it instead of *telebot.Bot so they can be tested without the network.
type Sender interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
