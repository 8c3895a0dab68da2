package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/professor"
	"github.com/Freeeeeet/proctor_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	p, err := h.professorService.GetByChannel(ctx, strconv.FormatInt(chatID, 10))
	if err != nil {
		// Регистрирует администратор, поэтому показываем chat id для передачи ему
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 Hello!\n\n"+
				"This bot allocates exam proctoring duties. You are not registered yet.\n"+
				"Send this chat id to the administrator: <code>%d</code>",
			chatID,
		), nil)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"👋 Hello, %s!\n\n"+
			"Commands:\n"+
			"/exam - Pick a day for an exam duty\n"+
			"/my - My allocations and quota\n"+
			"/timetable - Add a class to my timetable\n"+
			"/help - Help",
		html.EscapeString(p.Name),
	), nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Commands:\n\n" +
		"/exam - Pick a weekday; a slot and a classroom are allocated instantly\n" +
		"/my - Your allocations, quota and timetable\n" +
		UsageTimetable + "\n" +
		"/cancel - Cancel a pending confirmation\n\n" +
		"If you have classes on the chosen day you will be asked to confirm.\n" +
		"If no classroom is free you are added to the emergency pool and the administrator contacts you."

	if h.adminChatID != 0 && update.Message.Chat.ID == h.adminChatID {
		helpText += "\n\n🛠 Administrator:\n" +
			UsageAddProfessor + "\n" +
			UsageAddClassroom + "\n" +
			UsageAddSlot + "\n" +
			"/pool - Professors waiting in the emergency pool\n" +
			"/allocations - All allocations\n" +
			"/overview - Totals and classroom utilization by department"
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, html.EscapeString(helpText), nil)
}

// HandleCancel обрабатывает команду /cancel - отмена ожидающего подтверждения
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled. Use /exam to pick a day.", nil)
}

// HandleExam показывает клавиатуру доступных дней
func (h *Handlers) HandleExam(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, ok := h.requireProfessor(ctx, b, update)
	if !ok {
		return
	}

	dashboard, err := h.professorService.Dashboard(ctx, p)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.String("professor_id", p.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	if len(dashboard.AvailableWeekdays) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "📭 No exam slots are published yet.", nil)
		return
	}

	text := fmt.Sprintf("📅 Pick a day for your exam duty (%d/%d taken).\nThe number is how many exam slots fall on that day.",
		len(dashboard.Allocations), dashboard.Required)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, keyboard.Days(professor.DayOptions(dashboard)))
}

// HandleMy показывает назначения, нагрузку и расписание
func (h *Handlers) HandleMy(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, ok := h.requireProfessor(ctx, b, update)
	if !ok {
		return
	}

	dashboard, err := h.professorService.Dashboard(ctx, p)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.String("professor_id", p.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.Dashboard(dashboard), nil)
}

// HandleTimetable добавляет занятие в расписание преподавателя
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, ok := h.requireProfessor(ctx, b, update)
	if !ok {
		return
	}

	in, err := parseTimetable(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\n"+UsageTimetable)
		return
	}

	entry, err := h.catalogService.AddTimetableEntry(ctx, p.ID, in)
	if err != nil {
		h.logger.Warn("Failed to add timetable entry", zap.String("professor_id", p.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.TimetableEntry(entry), nil)
}
