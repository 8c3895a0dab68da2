package handlers

import (
	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/controller/state"
	"github.com/Freeeeeet/proctor_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	professorService *service.ProfessorService
	catalogService   *service.CatalogService
	notifier         allocation.Notifier
	stateManager     *state.Manager
	adminChatID      int64
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд.
// adminChatID = 0 отключает администраторские команды.
func NewHandlers(
	professorService *service.ProfessorService,
	catalogService *service.CatalogService,
	notifier allocation.Notifier,
	stateManager *state.Manager,
	adminChatID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		professorService: professorService,
		catalogService:   catalogService,
		notifier:         notifier,
		stateManager:     stateManager,
		adminChatID:      adminChatID,
		logger:           logger,
	}
}
