package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage        = errors.New("no message in callback")
	ErrInvalidFormat    = errors.New("invalid callback format")
	ErrConfirmationGone = errors.New("confirmation expired or already used")
	ErrNotAdmin         = errors.New("user is not an administrator")
	ErrMissingArguments = errors.New("missing command arguments")
	ErrInvalidNumber    = errors.New("invalid number")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var verrs service.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		return "❌ " + verrs.Error()
	case errors.Is(err, service.ErrProfessorNotFound):
		return "❌ You are not registered as a professor. Ask the administrator to add you."
	case errors.Is(err, service.ErrProfessorExists):
		return "❌ A professor with this Telegram chat is already registered"
	case errors.Is(err, service.ErrInvalidWeekday):
		return "❌ Unknown day. Use a day name like Monday"
	case errors.Is(err, service.ErrInvalidDate):
		return "❌ Invalid date. Use YYYY-MM-DD"
	case errors.Is(err, service.ErrInvalidTimeRange):
		return "❌ End time must be after start time"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "⌛ The request was cancelled or took too long. Please try again."
	case errors.Is(err, allocation.ErrStoreUnavailable):
		return "❌ The allocation service is temporarily unavailable. Please try again."
	case errors.Is(err, ErrConfirmationGone):
		return "⌛ This confirmation has expired. Use /exam to pick a day again."
	case errors.Is(err, ErrNotAdmin):
		return "❌ This command is available to the administrator only"
	case errors.Is(err, ErrMissingArguments):
		return "❌ Not enough arguments. See /help"
	case errors.Is(err, ErrInvalidNumber):
		return "❌ Invalid number"
	case errors.Is(err, ErrNoMessage):
		return "❌ Message processing error"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	default:
		return "❌ Something went wrong. Please try again later."
	}
}
