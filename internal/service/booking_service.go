package service

import (
	"github.com/Freeeeeet/slot_scheduler/internal/availability"
	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// BookingService чтение доступности для клиентов и администратора.
// Резервирования нет: одно и то же время могут одновременно видеть несколько клиентов.
type BookingService struct {
	snapshot SnapshotSource
	template availability.Template
	clock    *clock.Policy
}

func NewBookingService(snapshot SnapshotSource, template availability.Template, clk *clock.Policy) *BookingService {
	return &BookingService{
		snapshot: snapshot,
		template: template,
		clock:    clk,
	}
}

// AvailableTimes возвращает время, доступное для записи на дату.
// Для прошедших дат список пуст.
func (s *BookingService) AvailableTimes(date string) ([]string, error) {
	if !clock.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}
	if s.clock.IsPast(date) {
		return []string{}, nil
	}
	return availability.Times(availability.Resolve(s.template, date, s.snapshot.Current())), nil
}

// Slots возвращает размеченные слоты на дату для экрана администратора
func (s *BookingService) Slots(date string) ([]model.ResolvedSlot, error) {
	if !clock.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}
	return availability.Resolve(s.template, date, s.snapshot.Current()), nil
}

// SuppressedTimes возвращает время шаблона, скрытое на дату маркерами
func (s *BookingService) SuppressedTimes(date string) ([]string, error) {
	if !clock.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}

	offered := make(map[string]struct{})
	for _, slot := range availability.Resolve(s.template, date, s.snapshot.Current()) {
		offered[slot.Time] = struct{}{}
	}

	suppressed := []string{}
	for _, t := range s.template.Times() {
		if _, ok := offered[t]; !ok {
			suppressed = append(suppressed, t)
		}
	}
	return suppressed, nil
}

// Today возвращает сегодняшнюю дату в часовом поясе бизнеса
func (s *BookingService) Today() string {
	return s.clock.TodayString()
}

// ShiftDate сдвигает дату на n дней, используется для навигации по дням
func (s *BookingService) ShiftDate(date string, n int) (string, error) {
	return s.clock.AddDays(date, n)
}

// IsPast сообщает, что дата раньше сегодняшней
func (s *BookingService) IsPast(date string) bool {
	return s.clock.IsPast(date)
}
