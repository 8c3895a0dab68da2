package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/professor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const Noop = "noop"

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case strings.HasPrefix(data, keyboard.DayPrefix):
		professor.HandleDaySelect(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ConfirmDayPrefix):
		professor.HandleConfirmDay(ctx, b, callback, h)
	case data == keyboard.CancelDay:
		professor.HandleCancelDay(ctx, b, callback, h)
	case data == Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown action")
	}
}
