package professor

import (
	"context"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/proctor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/proctor_bot/internal/controller/state"
	"github.com/Freeeeeet/proctor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// DayOptions кнопки доступных дней для клавиатуры /exam
func DayOptions(d *service.Dashboard) []keyboard.DayOption {
	options := make([]keyboard.DayOption, 0, len(d.AvailableWeekdays))
	for _, day := range d.AvailableWeekdays {
		options = append(options, keyboard.DayOption{
			Weekday: day,
			Label:   formatting.DayButton(d, day),
		})
	}
	return options
}

// HandleDaySelect преподаватель нажал на день в клавиатуре /exam
func HandleDaySelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithProfessor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		weekday, err := common.ParseWeekdayFromCallback(callback.Data, keyboard.DayPrefix)
		if err != nil {
			common.HandleError(hc, err, "parse weekday")
			return
		}

		// Новый выбор отменяет незавершённое подтверждение
		hc.ClearState()
		selectDay(hc, weekday, false)
	})
}

// HandleConfirmDay преподаватель подтвердил день несмотря на занятия
func HandleConfirmDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithProfessor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		weekday, err := common.ParseWeekdayFromCallback(callback.Data, keyboard.ConfirmDayPrefix)
		if err != nil {
			common.HandleError(hc, err, "parse weekday")
			return
		}

		data, ok := hc.Take(state.StateConfirmDay)
		if !ok || data[state.KeyWeekday] != weekday {
			hc.AnswerAlert(common.ErrorMessage(common.ErrConfirmationGone))
			return
		}

		selectDay(hc, weekday, true)
	})
}

// HandleCancelDay выход из ConfirmPending без записи
func HandleCancelDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()
	hc.Answer("Cancelled")

	if err := hc.EditMessageText("Selection cancelled. Use /exam to pick another day."); err != nil {
		h.Logger.Warn("Failed to edit message", zap.Error(err))
	}
}

func selectDay(hc *common.HandlerContext, weekday string, confirmed bool) {
	result, err := hc.Handler.ProfessorService.SelectDay(hc.Ctx, hc.Channel(), weekday, confirmed)
	if err != nil {
		common.HandleError(hc, err, "select day")
		return
	}

	hc.Handler.Logger.Info("Day selection processed",
		zap.String("professor_id", hc.Professor.ID),
		zap.String("weekday", weekday),
		zap.String("state", string(result.State)),
	)

	var kb *models.InlineKeyboardMarkup
	if result.State == allocation.StateConfirmPending {
		hc.SetState(state.StateConfirmDay)
		hc.SetData(state.KeyWeekday, result.Weekday)
		kb = keyboard.ConfirmDay(result.Weekday)
	}

	hc.Answer("")
	if err := hc.EditMessage(formatting.Result(result), kb); err != nil {
		hc.Handler.Logger.Warn("Failed to edit message", zap.Error(err))
	}
}
