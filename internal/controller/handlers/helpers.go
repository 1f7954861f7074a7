package handlers

import (
	"strings"

	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// CommandArgs возвращает аргументы команды без самой команды.
// Например: "/add 2025-06-10 09:00" -> [2025-06-10 09:00]
func CommandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// ResolveDateArg переводит аргумент даты в YYYY-MM-DD.
// Пустой аргумент означает сегодня, также понимаются "завтра" и "tomorrow".
func ResolveDateArg(arg, today string, shift func(date string, n int) (string, error)) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "сегодня", "today":
		return today, nil
	case "завтра", "tomorrow":
		return shift(today, 1)
	}

	if !clock.ValidDate(arg) {
		return "", model.ErrInvalidDate
	}
	return arg, nil
}
