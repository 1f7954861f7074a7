package model

// SlotException отклонение от фиксированного шаблона для конкретной пары (дата, время).
// Запись без флага Removed добавляет дополнительный слот, с флагом Removed подавляет время.
type SlotException struct {
	ID      string `json:"id"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
	Removed bool   `json:"removed,omitempty"`
}

// IsActive сообщает, что запись не является маркером удаления
func (e SlotException) IsActive() bool {
	return !e.Removed
}

// Origin происхождение времени в расчётной доступности
type Origin string

const (
	OriginFixed Origin = "fixed" // время из фиксированного шаблона
	OriginExtra Origin = "extra" // время, добавленное на конкретную дату
)

// ResolvedSlot время, доступное на дату после слияния шаблона и исключений.
// Никогда не сохраняется, вычисляется на каждый запрос.
type ResolvedSlot struct {
	Time     string `json:"time"`
	Origin   Origin `json:"origin"`
	SourceID string `json:"source_id,omitempty"` // только для extra
}

// IsFixed сообщает, что время пришло из шаблона и снимается через маркер удаления
func (s ResolvedSlot) IsFixed() bool {
	return s.Origin == OriginFixed
}

// IsExtra сообщает, что у времени есть собственная запись, которую можно удалить
func (s ResolvedSlot) IsExtra() bool {
	return s.Origin == OriginExtra && s.SourceID != ""
}
