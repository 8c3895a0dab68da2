package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/controller/state"
	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/service"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, s state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	Take(telegramID int64, s state.UserState) (map[string]interface{}, bool)
}

// ProfessorService сценарии преподавателя, которые нужны callback handlers
type ProfessorService interface {
	GetByChannel(ctx context.Context, channel string) (*model.Professor, error)
	Dashboard(ctx context.Context, professor *model.Professor) (*service.Dashboard, error)
	SelectDay(ctx context.Context, channel, weekday string, confirmed bool) (*allocation.Result, error)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	ProfessorService ProfessorService
	StateManager     StateManager
	Logger           *zap.Logger
}
