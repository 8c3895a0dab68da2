package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var ErrInvalidChannel = errors.New("invalid telegram channel")

// messageSender часть *bot.Bot, которой достаточно для отправки
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier доставляет уведомления в чат Telegram.
// Канал преподавателя его chat id, сохранённый при регистрации.
type TelegramNotifier struct {
	sender messageSender
	logger *zap.Logger
}

var _ allocation.Notifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(sender messageSender, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, logger: logger}
}

func (n *TelegramNotifier) Notify(ctx context.Context, channel, subject, body string) error {
	chatID, err := ParseChatID(channel)
	if err != nil {
		return err
	}

	_, err = n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   FormatMessage(subject, body),
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Debug("Notification sent",
		zap.Int64("chat_id", chatID),
		zap.String("subject", subject))
	return nil
}

// ParseChatID разбирает chat id (может быть отрицательным для групп)
func ParseChatID(channel string) (int64, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidChannel)
	}

	chatID, err := strconv.ParseInt(channel, 10, 64)
	if err != nil || chatID == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	return chatID, nil
}

// FormatMessage тема первой строкой, затем тело
func FormatMessage(subject, body string) string {
	if subject == "" {
		return body
	}
	return "📌 " + subject + "\n\n" + body
}
