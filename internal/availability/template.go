package availability

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidTime проверяет время в формате HH:MM (24 часа, с ведущим нулём)
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// Template фиксированный список времени, которое предлагается на каждую дату.
// Не хранится в базе, задаётся конфигурацией при старте.
type Template struct {
	times []string
	set   map[string]struct{}
}

// NewTemplate создаёт шаблон; время сортируется, дубликаты удаляются
func NewTemplate(times []string) (Template, error) {
	set := make(map[string]struct{}, len(times))
	sorted := make([]string, 0, len(times))
	for _, t := range times {
		t = strings.TrimSpace(t)
		if !ValidTime(t) {
			return Template{}, fmt.Errorf("fixed time %q: %w", t, model.ErrInvalidTime)
		}
		if _, ok := set[t]; ok {
			continue
		}
		set[t] = struct{}{}
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)
	return Template{times: sorted, set: set}, nil
}

// MustTemplate как NewTemplate, но паникует на неверном времени
func MustTemplate(times ...string) Template {
	tpl, err := NewTemplate(times)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Contains сообщает, входит ли время в шаблон
func (t Template) Contains(hhmm string) bool {
	_, ok := t.set[hhmm]
	return ok
}

// Times возвращает копию отсортированного списка
func (t Template) Times() []string {
	out := make([]string, len(t.times))
	copy(out, t.times)
	return out
}

func (t Template) Len() int {
	return len(t.times)
}
