package common

import (
	"errors"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// Общие ошибки для обработчиков
var (
	ErrNotAdmin      = errors.New("user is not an admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotAdmin):
		return "❌ Эта функция доступна только администраторам"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return model.UserMessage(err)
	}
}
