package controller

import (
	"context"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/proctor_bot/internal/controller/handlers"
	"github.com/Freeeeeet/proctor_bot/internal/controller/state"
	"github.com/Freeeeeet/proctor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	professorService *service.ProfessorService,
	catalogService *service.CatalogService,
	notifier allocation.Notifier,
	adminChatID int64,
	logger *zap.Logger,
) *BotController {
	// Общий менеджер состояний: подтверждение дня начинается в callback и может быть отменено командой
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		professorService,
		catalogService,
		notifier,
		stateManager,
		adminChatID,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		professorService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды преподавателя
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/exam", bot.MatchTypeExact, c.handlers.HandleExam)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/my", bot.MatchTypeExact, c.handlers.HandleMy)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/timetable", bot.MatchTypePrefix, c.handlers.HandleTimetable)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addprofessor", bot.MatchTypePrefix, c.handlers.HandleAddProfessor)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addclassroom", bot.MatchTypePrefix, c.handlers.HandleAddClassroom)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addslot", bot.MatchTypePrefix, c.handlers.HandleAddSlot)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pool", bot.MatchTypeExact, c.handlers.HandlePool)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/allocations", bot.MatchTypeExact, c.handlers.HandleAllocations)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/overview", bot.MatchTypeExact, c.handlers.HandleOverview)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start"},
		{Command: "exam", Description: "📅 Pick a day for an exam duty"},
		{Command: "my", Description: "📋 My allocations and quota"},
		{Command: "timetable", Description: "🗓 Add a class to my timetable"},
		{Command: "cancel", Description: "✖️ Cancel pending confirmation"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
