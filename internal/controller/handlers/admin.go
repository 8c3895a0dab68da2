package handlers

import (
	"context"
	"html"

	"github.com/Freeeeeet/proctor_bot/internal/app"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAddProfessor регистрирует преподавателя и отправляет ему приветствие
func (h *Handlers) HandleAddProfessor(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	in, err := parseProfessor(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+UsageAddProfessor)
		return
	}

	p, err := h.catalogService.RegisterProfessor(ctx, in)
	if err != nil {
		h.logger.Warn("Failed to register professor", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.Professor(p), nil)

	if err := h.notifier.Notify(ctx, p.ContactChannel, "Welcome", formatting.Welcome(p)); err != nil {
		h.logger.Warn("Failed to send welcome message",
			zap.String("professor_id", p.ID),
			zap.Error(err))
	}
}

// HandleAddClassroom добавляет аудиторию
func (h *Handlers) HandleAddClassroom(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	in, err := parseClassroom(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+UsageAddClassroom)
		return
	}

	c, err := h.catalogService.CreateClassroom(ctx, in)
	if err != nil {
		h.logger.Warn("Failed to create classroom", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.Classroom(c), nil)
}

// HandleAddSlot добавляет слот экзамена
func (h *Handlers) HandleAddSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	date, subject, err := parseExamSlot(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+UsageAddSlot)
		return
	}

	slot, err := h.catalogService.CreateExamSlot(ctx, date, subject)
	if err != nil {
		h.logger.Warn("Failed to create exam slot", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.ExamSlot(slot), nil)
}

// HandlePool показывает ожидающих в emergency pool
func (h *Handlers) HandlePool(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	entries, err := h.catalogService.ListWaitingPool(ctx)
	if err != nil {
		h.logger.Error("Failed to list emergency pool", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(entries) == 0 {
		h.sendMessage(ctx, b, chatID, "✅ The emergency pool is empty.", nil)
		return
	}

	h.sendMessage(ctx, b, chatID, html.EscapeString(app.FormatDigest(entries)), nil)
}

// HandleAllocations показывает все назначения
func (h *Handlers) HandleAllocations(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	allocations, err := h.catalogService.ListAllocations(ctx)
	if err != nil {
		h.logger.Error("Failed to list allocations", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.Allocations(allocations), nil)
}

// HandleOverview показывает сводку и занятость аудиторий по кафедрам
func (h *Handlers) HandleOverview(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	overview, err := h.catalogService.Overview(ctx)
	if err != nil {
		h.logger.Error("Failed to build overview", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.Overview(overview), nil)
}
