// Package clock определяет "сегодня" и сравнение дат в одном фиксированном часовом поясе.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // пояс должен загружаться и без системной базы

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

const (
	DateLayout = "2006-01-02"

	// DefaultTimezone часовой пояс, в котором работает бизнес
	DefaultTimezone = "America/Sao_Paulo"
)

// Policy вычисляет гражданскую дату в фиксированном часовом поясе.
// Не хранит состояния кроме пояса и источника времени.
type Policy struct {
	loc *time.Location
	now func() time.Time
}

// New создаёт политику; nil значения заменяются на UTC и time.Now
func New(loc *time.Location, now func() time.Time) *Policy {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Policy{loc: loc, now: now}
}

// LoadLocation загружает часовой пояс по имени IANA
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Location возвращает часовой пояс политики
func (p *Policy) Location() *time.Location {
	return p.loc
}

// Now возвращает текущий момент в часовом поясе политики
func (p *Policy) Now() time.Time {
	return p.now().In(p.loc)
}

// Today возвращает полночь текущего дня
func (p *Policy) Today() time.Time {
	return truncateToDate(p.Now())
}

// TodayString возвращает текущую дату в формате YYYY-MM-DD
func (p *Policy) TodayString() string {
	return p.Today().Format(DateLayout)
}

// DateOf переводит момент времени в гражданскую дату пояса
func (p *Policy) DateOf(t time.Time) string {
	return t.In(p.loc).Format(DateLayout)
}

// IsPast сообщает, что дата строго раньше сегодняшней. Время суток не участвует.
func (p *Policy) IsPast(date string) bool {
	return date < p.TodayString()
}

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе политики
func (p *Policy) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDate, s)
	}
	return t, nil
}

// AddDays сдвигает дату YYYY-MM-DD на n дней
func (p *Policy) AddDays(date string, n int) (string, error) {
	t, err := p.ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// ValidDate проверяет формат YYYY-MM-DD и существование даты
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
