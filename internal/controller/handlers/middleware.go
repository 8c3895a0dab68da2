package handlers

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireProfessor проверяет что пользователь зарегистрирован как преподаватель
// Возвращает professor и true если OK, nil и false если нет
func (h *Handlers) requireProfessor(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Professor, bool) {
	if update.Message == nil {
		return nil, false
	}

	channel := strconv.FormatInt(update.Message.Chat.ID, 10)
	professor, err := h.professorService.GetByChannel(ctx, channel)
	if err != nil {
		h.logger.Warn("Professor lookup failed", zap.String("channel", channel), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, false
	}

	return professor, true
}

// requireAdmin проверяет что команда пришла из чата администратора
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	if h.adminChatID == 0 || update.Message.Chat.ID != h.adminChatID {
		h.logger.Warn("Admin command rejected",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.String("text", update.Message.Text))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrNotAdmin))
		return false
	}

	return true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
