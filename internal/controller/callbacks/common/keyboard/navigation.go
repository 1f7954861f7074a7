package keyboard

import "github.com/go-telegram/bot/models"

// Noop callback без действия, для неактивных кнопок
const Noop = "noop"

// DayNavigationRow создаёт ряд "предыдущий день / сегодня / следующий день".
// Пустой prevData делает кнопку назад неактивной.
func DayNavigationRow(prevData, todayData, nextData string) []models.InlineKeyboardButton {
	prev := Button("⬅️", prevData)
	if prevData == "" {
		prev = Button("·", Noop)
	}

	return []models.InlineKeyboardButton{
		prev,
		Button("📅 Сегодня", todayData),
		Button("➡️", nextData),
	}
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}
