package model

import (
	"errors"
	"fmt"
)

// Ошибки валидации и хранилища, видимые администратору
var (
	ErrInvalidTime    = errors.New("invalid time")
	ErrInvalidDate    = errors.New("invalid date")
	ErrPastDate       = errors.New("date is in the past")
	ErrAlreadyOffered = errors.New("time is already offered")
	ErrNotFixedTime   = errors.New("time is not a fixed template time")
	ErrNotExtra       = errors.New("record is not an active extra slot")
	ErrNotFound       = errors.New("slot record not found")
	ErrWrite          = errors.New("slot store write failed")
)

// WriteError ошибка транспорта хранилища при записи
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать любую WriteError с ErrWrite через errors.Is
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// NewWriteError оборачивает ошибку транспорта
func NewWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Op: op, Err: err}
}

// UserMessage возвращает пользовательское сообщение для ошибки
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidTime):
		return "❌ Неверный формат времени. Используйте ЧЧ:ММ, например 09:30"
	case errors.Is(err, ErrInvalidDate):
		return "❌ Неверная дата. Используйте формат ГГГГ-ММ-ДД"
	case errors.Is(err, ErrPastDate):
		return "❌ Нельзя изменять расписание на прошедшую дату"
	case errors.Is(err, ErrAlreadyOffered):
		return "❌ Это время уже доступно на выбранную дату"
	case errors.Is(err, ErrNotFixedTime):
		return "❌ Это время не входит в постоянное расписание"
	case errors.Is(err, ErrNotExtra):
		return "❌ Это не дополнительный слот, его нельзя удалить"
	case errors.Is(err, ErrNotFound):
		return "❌ Слот не найден, возможно он уже изменён"
	case errors.Is(err, ErrWrite):
		return "❌ Не удалось сохранить изменения. Попробуйте позже"
	default:
		return "❌ Произошла ошибка"
	}
}
