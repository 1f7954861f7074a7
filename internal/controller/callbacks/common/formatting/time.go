package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/slot_scheduler/internal/clock"
)

// FormatFriendlyDate форматирует дату YYYY-MM-DD как "вторник, 10 июня".
// Некорректная дата возвращается как есть.
func FormatFriendlyDate(date string) string {
	t, err := time.Parse(clock.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d %s", GetWeekdayName(int(t.Weekday())), t.Day(), GetMonthNameGenitive(t.Month()))
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"воскресенье",
		"понедельник",
		"вторник",
		"среда",
		"четверг",
		"пятница",
		"суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "неизвестно"
}

// GetMonthNameGenitive возвращает название месяца в родительном падеже
func GetMonthNameGenitive(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return names[month]
}
