package common

import (
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
	"github.com/go-telegram/bot/models"
)

// BuildSlotsScreen формирует экран свободного времени для клиента
func BuildSlotsScreen(booking *service.BookingService, date string) (string, *models.InlineKeyboardMarkup, error) {
	times, err := booking.AvailableTimes(date)
	if err != nil {
		return "", nil, err
	}

	text := formatting.FormatAvailableTimes(date, times, booking.IsPast(date))
	kb := keyboard.NewBuilder().
		Row(dayNavigation(booking, SlotsDay, date)...).
		Build()

	return text, kb, nil
}

// BuildScheduleScreen формирует экран управления днём для администратора.
// Для прошедших дат кнопки изменений не показываются.
func BuildScheduleScreen(booking *service.BookingService, date string) (string, *models.InlineKeyboardMarkup, error) {
	slots, err := booking.Slots(date)
	if err != nil {
		return "", nil, err
	}
	suppressed, err := booking.SuppressedTimes(date)
	if err != nil {
		return "", nil, err
	}

	past := booking.IsPast(date)
	text := formatting.FormatDaySchedule(date, slots, suppressed, past)
	kb := keyboard.NewBuilder()

	if !past {
		buttons := make([]models.InlineKeyboardButton, 0, len(slots)+len(suppressed))
		for _, slot := range slots {
			if slot.IsExtra() {
				buttons = append(buttons, keyboard.Button("🗑 "+slot.Time, RemoveExtraCallback(slot.SourceID, date)))
			} else {
				buttons = append(buttons, keyboard.Button("🚫 "+slot.Time, PairCallback(SuppressFixed, date, slot.Time)))
			}
		}
		for _, hhmm := range suppressed {
			buttons = append(buttons, keyboard.Button("♻️ "+hhmm, PairCallback(RestoreFixed, date, hhmm)))
		}
		kb.Grid(buttons, 3)
		kb.Row(keyboard.Button("➕ Добавить время", DayCallback(AddExtra, date)))
	}

	kb.Row(dayNavigation(booking, ScheduleDay, date)...)

	return text, kb.Build(), nil
}

// dayNavigation не даёт уйти в прошлое дальше сегодняшнего дня
func dayNavigation(booking *service.BookingService, prefix, date string) []models.InlineKeyboardButton {
	today := booking.Today()

	var prevData string
	if date > today {
		if prev, err := booking.ShiftDate(date, -1); err == nil {
			prevData = DayCallback(prefix, prev)
		}
	}

	nextData := DayCallback(prefix, today)
	if next, err := booking.ShiftDate(date, 1); err == nil {
		nextData = DayCallback(prefix, next)
	}

	return keyboard.DayNavigationRow(prevData, DayCallback(prefix, today), nextData)
}
