package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"go.uber.org/zap"
)

const DigestSubject = "Emergency pool digest"

// WaitingPoolLister источник ожидающих записей emergency pool
type WaitingPoolLister interface {
	ListWaiting(ctx context.Context) ([]model.EmergencyPoolEntry, error)
}

// DigestNotifier канал доставки сводки администратору
type DigestNotifier interface {
	Notify(ctx context.Context, channel, subject, body string) error
}

// Scheduler периодически отправляет администратору сводку по emergency pool
type Scheduler struct {
	pool         WaitingPoolLister
	notifier     DigestNotifier
	adminChannel string
	interval     time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
	done         chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	pool WaitingPoolLister,
	notifier DigestNotifier,
	adminChannel string,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		pool:         pool,
		notifier:     notifier,
		adminChannel: adminChannel,
		interval:     interval,
		logger:       logger,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runDigestTask(ctx)
}

// Stop останавливает задачу и ждёт её завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runDigestTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.sendDigest(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDigest(ctx)
		case <-s.stopChan:
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

func (s *Scheduler) sendDigest(ctx context.Context) {
	entries, err := s.pool.ListWaiting(ctx)
	if err != nil {
		s.logger.Error("Failed to list emergency pool", zap.Error(err))
		return
	}

	if len(entries) == 0 {
		s.logger.Debug("Emergency pool is empty, digest skipped")
		return
	}

	if err := s.notifier.Notify(ctx, s.adminChannel, DigestSubject, FormatDigest(entries)); err != nil {
		s.logger.Error("Failed to send emergency pool digest", zap.Error(err))
		return
	}

	s.logger.Info("Emergency pool digest sent", zap.Int("waiting", len(entries)))
}

// FormatDigest текст сводки: одна строка на ожидающего преподавателя
func FormatDigest(entries []model.EmergencyPoolEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d professor(s) waiting in the emergency pool:\n", len(entries))

	for i, e := range entries {
		day := e.RequestedWeekday
		if date := e.RequestedDateString(); date != "" {
			day += ", " + date
		}
		fmt.Fprintf(&sb, "\n%d. %s (%s, %s)\n   %s\n   Phone: %s\n   %s\n",
			i+1,
			e.ProfessorName,
			e.Department,
			e.Designation,
			day,
			e.Phone,
			e.Reason,
		)
	}

	return sb.String()
}
