package common

// ========================
// Callback Data Patterns
// ========================
// Telegram ограничивает callback data 64 байтами, uuid + дата укладываются

const (
	// Клиент
	SlotsDay = "slots_day:" // slots_day:2025-06-10

	// Администратор
	ScheduleDay   = "schedule_day:" // schedule_day:2025-06-10
	SuppressFixed = "suppress:"     // suppress:2025-06-10:08:30
	RestoreFixed  = "restore:"      // restore:2025-06-10:08:30
	RemoveExtra   = "remove:"       // remove:<uuid>:2025-06-10
	AddExtra      = "add_extra:"    // add_extra:2025-06-10
	CancelDialog  = "cancel_dialog"
)

// DayCallback собирает callback для перехода на дату
func DayCallback(prefix, date string) string {
	return prefix + date
}

// PairCallback собирает callback для пары (дата, время)
func PairCallback(prefix, date, hhmm string) string {
	return prefix + date + ":" + hhmm
}

// RemoveExtraCallback собирает callback удаления дополнительного слота
func RemoveExtraCallback(id, date string) string {
	return RemoveExtra + id + ":" + date
}
