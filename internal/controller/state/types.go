package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Администратор вводит время дополнительного слота
	StateEnteringExtraTime UserState = "entering_extra_time"
)

// Ключи временных данных диалога
const (
	DataDate = "date"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
