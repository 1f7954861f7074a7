// Package availability вычисляет, какое время предлагается на дату,
// объединяя фиксированный шаблон с исключениями из хранилища.
package availability

import (
	"sort"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// Resolve объединяет шаблон и исключения для даты в упорядоченный список без дубликатов.
// Чистая функция: одинаковые входные данные всегда дают одинаковый результат.
func Resolve(tpl Template, date string, exceptions []model.SlotException) []model.ResolvedSlot {
	extras := make(map[string]string) // time -> id активной записи
	removed := make(map[string]struct{})

	for _, e := range exceptions {
		if e.Date != date {
			continue
		}
		if e.Removed {
			removed[e.Time] = struct{}{}
			continue
		}
		if tpl.Contains(e.Time) {
			continue
		}
		// при дубликатах берём наименьший id, чтобы порядок входа не влиял на результат
		if id, ok := extras[e.Time]; !ok || e.ID < id {
			extras[e.Time] = e.ID
		}
	}

	resolved := make([]model.ResolvedSlot, 0, tpl.Len()+len(extras))
	for _, t := range tpl.times {
		if _, ok := removed[t]; ok {
			continue
		}
		resolved = append(resolved, model.ResolvedSlot{Time: t, Origin: model.OriginFixed})
	}
	for t, id := range extras {
		if _, ok := removed[t]; ok {
			continue
		}
		resolved = append(resolved, model.ResolvedSlot{Time: t, Origin: model.OriginExtra, SourceID: id})
	}

	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].Time < resolved[j].Time
	})
	return resolved
}

// Times возвращает только время из разрешённых слотов
func Times(slots []model.ResolvedSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

// IsOffered сообщает, предлагается ли время на дату
func IsOffered(tpl Template, date, hhmm string, exceptions []model.SlotException) bool {
	for _, s := range Resolve(tpl, date, exceptions) {
		if s.Time == hhmm {
			return true
		}
	}
	return false
}

// ForPair возвращает записи для пары (дата, время), отсортированные по id
func ForPair(exceptions []model.SlotException, date, hhmm string) []model.SlotException {
	var matched []model.SlotException
	for _, e := range exceptions {
		if e.Date == date && e.Time == hhmm {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})
	return matched
}
