package services

import (
	"context"
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"accountsvc/internal/models"
)

// SignupNotifier сообщает в служебный чат о новых аккаунтах.
type SignupNotifier interface {
	NotifySignup(ctx context.Context, user *models.User) error
}

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifier struct {
	bot    telegramSender
	chatID int64
}

// NewTelegramNotifier без токена или чата возвращает заглушку.
func NewTelegramNotifier(botToken string, chatID int64) (SignupNotifier, error) {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg][skip] bot token or chat id not configured, signup notifications disabled")
		return NopNotifier{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg][init] authorized as @%s", bot.Self.UserName)
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) NotifySignup(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	source := "email"
	if user.IsGoogleUser {
		source = "google"
	}
	text := fmt.Sprintf("🆕 <b>New account</b>\n%s %s\n%s\nvia %s",
		html.EscapeString(user.FirstName),
		html.EscapeString(user.LastName),
		html.EscapeString(user.Email),
		source,
	)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

type NopNotifier struct{}

func (NopNotifier) NotifySignup(context.Context, *models.User) error { return nil }
