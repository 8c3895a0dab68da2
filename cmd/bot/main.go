package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/advisor"
	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/app"
	"github.com/Freeeeeet/proctor_bot/internal/config"
	"github.com/Freeeeeet/proctor_bot/internal/controller"
	"github.com/Freeeeeet/proctor_bot/internal/events"
	"github.com/Freeeeeet/proctor_bot/internal/notify"
	"github.com/Freeeeeet/proctor_bot/internal/repository"
	"github.com/Freeeeeet/proctor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := app.InitTracing("proctor_bot", cfg.TraceOutput)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	professorRepo := repository.NewProfessorRepository(pool)
	classroomRepo := repository.NewClassroomRepository(pool)
	slotRepo := repository.NewExamSlotRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	allocationRepo := repository.NewAllocationRepository(pool)
	emergencyRepo := repository.NewEmergencyRepository(pool)
	factStore := repository.NewFactStore(pool, classroomRepo, slotRepo, allocationRepo, timetableRepo, emergencyRepo)

	// Telegram
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}
	notifier := notify.NewTelegramNotifier(b, logger)

	// Движок распределения с опциональными советчиком и событиями
	var publisher allocation.EventPublisher
	if cfg.EventsEnabled() {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaBatch, logger)
		if err != nil {
			return err
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	var engineOpts []allocation.Option
	if cfg.AdvisorEnabled() {
		gemini, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, allocation.WithAdvisor(gemini, 0))
		logger.Info("Gemini advisor enabled", zap.String("model", cfg.GeminiModel))
	}

	engine := allocation.NewEngine(factStore, notifier, publisher, logger, engineOpts...)

	// Сервисы
	catalogService := service.NewCatalogService(professorRepo, classroomRepo, slotRepo, timetableRepo, factStore, emergencyRepo, logger)
	professorService := service.NewProfessorService(professorRepo, factStore, slotRepo, timetableRepo, engine, logger)

	var adminChatID int64
	if cfg.AdminChatID != "" {
		adminChatID, err = notify.ParseChatID(cfg.AdminChatID)
		if err != nil {
			return err
		}
	}

	// Сводка по emergency pool администратору
	if adminChatID != 0 {
		scheduler := app.NewScheduler(emergencyRepo, notifier, strconv.FormatInt(adminChatID, 10), cfg.DigestInterval, logger)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	botController := controller.NewBotController(b, professorService, catalogService, notifier, adminChatID, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	logger.Info("Starting proctor bot",
		zap.String("environment", cfg.Environment),
		zap.Bool("advisor", cfg.AdvisorEnabled()),
		zap.Bool("events", cfg.EventsEnabled()),
		zap.Bool("admin", adminChatID != 0),
	)

	return botController.Start(ctx)
}
