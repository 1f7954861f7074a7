package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/availability"
	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/events"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository"
)

// SlotService единственный писатель исключений: добавление, подавление, удаление и очистка.
// Проверки выполняются до обращения к хранилищу, частичных записей нет.
type SlotService struct {
	store     repository.SlotExceptionStore
	snapshot  SnapshotSource
	template  availability.Template
	clock     *clock.Policy
	publisher events.Publisher
	logger    *zap.Logger
}

func NewSlotService(
	store repository.SlotExceptionStore,
	snapshot SnapshotSource,
	template availability.Template,
	clk *clock.Policy,
	publisher events.Publisher,
	logger *zap.Logger,
) *SlotService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SlotService{
		store:     store,
		snapshot:  snapshot,
		template:  template,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
	}
}

// AddExtra делает время доступным на дату.
// Если для пары есть маркер удаления, он реактивируется вместо создания новой записи.
func (s *SlotService) AddExtra(ctx context.Context, date, hhmm string) (string, error) {
	if err := s.validate(date, hhmm); err != nil {
		return "", err
	}

	exceptions := s.snapshot.Current()
	if availability.IsOffered(s.template, date, hhmm, exceptions) {
		return "", model.ErrAlreadyOffered
	}

	var active, markers []model.SlotException
	for _, rec := range availability.ForPair(exceptions, date, hhmm) {
		if rec.Removed {
			markers = append(markers, rec)
		} else {
			active = append(active, rec)
		}
	}

	// активная запись уже есть, время скрыто лишним маркером: снимаем маркеры
	if len(active) > 0 {
		s.deleteMarkers(ctx, markers)
		s.logger.Info("Slot restored by dropping markers",
			zap.String("date", date),
			zap.String("time", hhmm),
			zap.String("id", active[0].ID))
		s.publish(ctx, model.SlotEventExtraReactivated, active[0].ID, date, hhmm)
		return active[0].ID, nil
	}

	if len(markers) > 0 {
		keep := markers[0]
		if err := s.store.SetRemoved(ctx, keep.ID, false); err != nil {
			if errors.Is(err, model.ErrAlreadyOffered) {
				s.logConflict(date, hhmm)
				return "", model.ErrAlreadyOffered
			}
			s.logger.Error("Failed to reactivate slot marker",
				zap.String("id", keep.ID),
				zap.String("date", date),
				zap.String("time", hhmm),
				zap.Error(err))
			return "", fmt.Errorf("reactivate slot: %w", err)
		}
		s.deleteMarkers(ctx, markers[1:])

		s.logger.Info("Slot marker reactivated",
			zap.String("id", keep.ID),
			zap.String("date", date),
			zap.String("time", hhmm))
		s.publish(ctx, model.SlotEventExtraReactivated, keep.ID, date, hhmm)
		return keep.ID, nil
	}

	id, err := s.store.Create(ctx, model.SlotException{Date: date, Time: hhmm})
	if err != nil {
		// параллельная запись успела раньше, снимок ещё не обновился
		if errors.Is(err, model.ErrAlreadyOffered) {
			s.logConflict(date, hhmm)
			return "", model.ErrAlreadyOffered
		}
		s.logger.Error("Failed to create extra slot",
			zap.String("date", date),
			zap.String("time", hhmm),
			zap.Error(err))
		return "", fmt.Errorf("create extra slot: %w", err)
	}

	s.logger.Info("Extra slot added",
		zap.String("id", id),
		zap.String("date", date),
		zap.String("time", hhmm))
	s.publish(ctx, model.SlotEventExtraAdded, id, date, hhmm)

	return id, nil
}

// SuppressFixed скрывает время шаблона на одну дату маркером удаления.
// Повторное подавление уже скрытого времени ничего не меняет.
func (s *SlotService) SuppressFixed(ctx context.Context, date, hhmm string) (string, error) {
	if err := s.validate(date, hhmm); err != nil {
		return "", err
	}
	if !s.template.Contains(hhmm) {
		return "", model.ErrNotFixedTime
	}

	pair := availability.ForPair(s.snapshot.Current(), date, hhmm)
	for _, rec := range pair {
		if rec.Removed {
			s.logger.Debug("Fixed slot already suppressed",
				zap.String("id", rec.ID),
				zap.String("date", date),
				zap.String("time", hhmm))
			return rec.ID, nil
		}
	}

	// запись от прошлой реактивации переиспользуется, чтобы на пару не копились записи
	if len(pair) > 0 {
		id := pair[0].ID
		if err := s.store.SetRemoved(ctx, id, true); err != nil {
			s.logger.Error("Failed to flip slot record to removed",
				zap.String("id", id),
				zap.Error(err))
			return "", fmt.Errorf("suppress fixed slot: %w", err)
		}
		s.logger.Info("Fixed slot suppressed",
			zap.String("id", id),
			zap.String("date", date),
			zap.String("time", hhmm))
		s.publish(ctx, model.SlotEventFixedSuppressed, id, date, hhmm)
		return id, nil
	}

	id, err := s.store.Create(ctx, model.SlotException{Date: date, Time: hhmm, Removed: true})
	if err != nil {
		s.logger.Error("Failed to create removal marker",
			zap.String("date", date),
			zap.String("time", hhmm),
			zap.Error(err))
		return "", fmt.Errorf("create removal marker: %w", err)
	}

	s.logger.Info("Fixed slot suppressed",
		zap.String("id", id),
		zap.String("date", date),
		zap.String("time", hhmm))
	s.publish(ctx, model.SlotEventFixedSuppressed, id, date, hhmm)

	return id, nil
}

// RemoveExtra удаляет дополнительный слот. Уже удалённая запись считается успехом.
func (s *SlotService) RemoveExtra(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrNotExtra
	}

	rec, found := findByID(s.snapshot.Current(), id)
	if !found {
		rec, found = s.lookup(ctx, id)
	}
	if found && (rec.Removed || s.template.Contains(rec.Time)) {
		return model.ErrNotExtra
	}

	err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Debug("Extra slot already removed", zap.String("id", id))
		return nil
	}
	if err != nil {
		s.logger.Error("Failed to delete extra slot",
			zap.String("id", id),
			zap.Error(err))
		return fmt.Errorf("delete extra slot: %w", err)
	}

	fields := []zap.Field{zap.String("id", id)}
	if found {
		fields = append(fields, zap.String("date", rec.Date), zap.String("time", rec.Time))
	}
	s.logger.Info("Extra slot removed", fields...)
	s.publish(ctx, model.SlotEventExtraRemoved, id, rec.Date, rec.Time)

	return nil
}

// PurgeExpired удаляет записи с датой раньше today. Ошибка отдельного удаления
// логируется и пропускается. Возвращает количество удалённых записей.
func (s *SlotService) PurgeExpired(ctx context.Context, exceptions []model.SlotException, today string) int {
	purged := 0
	for _, rec := range exceptions {
		if rec.Date >= today {
			continue
		}
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Purge interrupted", zap.Int("purged", purged), zap.Error(err))
			return purged
		}

		err := s.store.Delete(ctx, rec.ID)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("Failed to purge expired slot record",
				zap.String("id", rec.ID),
				zap.String("date", rec.Date),
				zap.Error(err))
			continue
		}

		purged++
		s.publish(ctx, model.SlotEventExpiredPurged, rec.ID, rec.Date, rec.Time)
	}

	if purged > 0 {
		s.logger.Info("Expired slot records purged",
			zap.Int("purged", purged),
			zap.String("today", today))
	}
	return purged
}

// PurgeExpiredNow очищает просроченные записи по текущему снимку и сегодняшней дате
func (s *SlotService) PurgeExpiredNow(ctx context.Context) int {
	return s.PurgeExpired(ctx, s.snapshot.Current(), s.clock.TodayString())
}

// Template возвращает фиксированный шаблон
func (s *SlotService) Template() availability.Template {
	return s.template
}

func (s *SlotService) validate(date, hhmm string) error {
	if !availability.ValidTime(hhmm) {
		return model.ErrInvalidTime
	}
	if !clock.ValidDate(date) {
		return model.ErrInvalidDate
	}
	if s.clock.IsPast(date) {
		return model.ErrPastDate
	}
	return nil
}

// lookup читает запись из хранилища, когда снимок ещё не догнал последнюю запись
func (s *SlotService) lookup(ctx context.Context, id string) (model.SlotException, bool) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to look up slot record",
			zap.String("id", id),
			zap.Error(err))
		return model.SlotException{}, false
	}
	return findByID(records, id)
}

func (s *SlotService) logConflict(date, hhmm string) {
	s.logger.Info("Slot already offered by a concurrent write",
		zap.String("date", date),
		zap.String("time", hhmm))
}

func (s *SlotService) deleteMarkers(ctx context.Context, markers []model.SlotException) {
	for _, m := range markers {
		if err := s.store.Delete(ctx, m.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Failed to delete duplicate removal marker",
				zap.String("id", m.ID),
				zap.Error(err))
		}
	}
}

func (s *SlotService) publish(ctx context.Context, typ model.SlotEventType, id, date, hhmm string) {
	event := model.SlotEvent{
		Type: typ,
		ID:   id,
		Date: date,
		Time: hhmm,
		At:   s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish slot event",
			zap.String("type", string(typ)),
			zap.String("id", id),
			zap.Error(err))
	}
}

func findByID(records []model.SlotException, id string) (model.SlotException, bool) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.SlotException{}, false
}
