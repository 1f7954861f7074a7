package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// FormatAvailableTimes форматирует список свободного времени для клиента
func FormatAvailableTimes(date string, times []string, past bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>%s</b>\n\n", FormatFriendlyDate(date))

	switch {
	case past:
		sb.WriteString("Эта дата уже прошла, запись недоступна.")
	case len(times) == 0:
		sb.WriteString("😔 На эту дату свободного времени нет.")
	default:
		fmt.Fprintf(&sb, "Доступно %d %s:\n", len(times), PluralizeSlots(len(times)))
		sb.WriteString(strings.Join(times, "  •  "))
	}

	return sb.String()
}

// FormatDaySchedule форматирует расписание дня для администратора
func FormatDaySchedule(date string, slots []model.ResolvedSlot, suppressed []string, past bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>Расписание на %s</b>\n", FormatFriendlyDate(date))
	fmt.Fprintf(&sb, "<code>%s</code>\n\n", date)

	if len(slots) == 0 {
		sb.WriteString("Нет доступного времени\n")
	}
	for _, slot := range slots {
		fmt.Fprintf(&sb, "%s %s\n", SlotOriginEmoji(slot), slot.Time)
	}

	if len(suppressed) > 0 {
		fmt.Fprintf(&sb, "\n🚫 Скрыто: %s\n", strings.Join(suppressed, ", "))
	}

	if past {
		sb.WriteString("\n⏳ Дата прошла, изменения недоступны")
	} else {
		sb.WriteString("\n🕐 постоянное время  ➕ дополнительное")
	}

	return sb.String()
}

// SlotOriginEmoji возвращает значок происхождения слота
func SlotOriginEmoji(slot model.ResolvedSlot) string {
	if slot.IsExtra() {
		return "➕"
	}
	return "🕐"
}
