// Package memory хранилище исключений в памяти процесса.
// Используется в тестах и при локальном запуске без базы данных.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository"
)

// WriteHook позволяет подменить результат записи, например чтобы сымитировать сбой транспорта
type WriteHook func(op, id string) error

// Store хранилище с синхронной доставкой снимков подписчикам.
// Как и уникальный индекс в PostgreSQL, не допускает двух активных записей на пару (дата, время).
// Обработчик подписки не должен синхронно писать в то же хранилище.
type Store struct {
	mu      sync.RWMutex
	records map[string]model.SlotException
	version uint64
	subs    map[uint64]*subscriber
	nextSub uint64
	hook    WriteHook
}

var _ repository.SlotExceptionStore = (*Store)(nil)

func NewStore(seed ...model.SlotException) *Store {
	s := &Store{
		records: make(map[string]model.SlotException, len(seed)),
		subs:    make(map[uint64]*subscriber),
	}
	for _, rec := range seed {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		s.records[rec.ID] = rec
	}
	return s
}

// SetWriteHook устанавливает перехватчик записей; nil снимает его
func (s *Store) SetWriteHook(hook WriteHook) {
	s.mu.Lock()
	s.hook = hook
	s.mu.Unlock()
}

func (s *Store) List(ctx context.Context) ([]model.SlotException, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

// Len возвращает количество записей
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Create(ctx context.Context, record model.SlotException) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", model.NewWriteError("create slot exception", err)
	}

	s.mu.Lock()
	if record.IsActive() && s.hasActiveLocked(record.Date, record.Time, "") {
		s.mu.Unlock()
		return "", model.ErrAlreadyOffered
	}
	if err := s.runHook("create", ""); err != nil {
		s.mu.Unlock()
		return "", err
	}
	record.ID = uuid.NewString()
	s.records[record.ID] = record
	version, records, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(version, records, subs)
	return record.ID, nil
}

func (s *Store) SetRemoved(ctx context.Context, id string, removed bool) error {
	if err := ctx.Err(); err != nil {
		return model.NewWriteError("update slot exception", err)
	}

	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return model.ErrNotFound
	}
	if !removed && s.hasActiveLocked(rec.Date, rec.Time, id) {
		s.mu.Unlock()
		return model.ErrAlreadyOffered
	}
	if err := s.runHook("update", id); err != nil {
		s.mu.Unlock()
		return err
	}
	rec.Removed = removed
	s.records[id] = rec
	version, records, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(version, records, subs)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return model.NewWriteError("delete slot exception", err)
	}

	s.mu.Lock()
	if _, ok := s.records[id]; !ok {
		s.mu.Unlock()
		return model.ErrNotFound
	}
	if err := s.runHook("delete", id); err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.records, id)
	version, records, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(version, records, subs)
	return nil
}

func (s *Store) Subscribe(ctx context.Context, fn repository.SnapshotFunc) (repository.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.nextSub++
	key := s.nextSub
	sub := &subscriber{fn: fn}
	s.subs[key] = sub
	version, records := s.version, s.snapshotLocked()
	s.mu.Unlock()

	sub.deliver(version, records)

	cancel := func() {
		sub.once.Do(func() {
			sub.cancelled.Store(true)
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
		})
	}
	return cancel, nil
}

// hasActiveLocked ищет активную запись пары, кроме except
func (s *Store) hasActiveLocked(date, hhmm, except string) bool {
	for id, rec := range s.records {
		if id != except && rec.IsActive() && rec.Date == date && rec.Time == hhmm {
			return true
		}
	}
	return false
}

func (s *Store) runHook(op, id string) error {
	if s.hook == nil {
		return nil
	}
	if err := s.hook(op, id); err != nil {
		return model.NewWriteError(op+" slot exception", err)
	}
	return nil
}

func (s *Store) commitLocked() (uint64, []model.SlotException, []*subscriber) {
	s.version++
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	return s.version, s.snapshotLocked(), subs
}

func (s *Store) snapshotLocked() []model.SlotException {
	records := make([]model.SlotException, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		if records[i].Time != records[j].Time {
			return records[i].Time < records[j].Time
		}
		return records[i].ID < records[j].ID
	})
	return records
}

func (s *Store) publish(version uint64, records []model.SlotException, subs []*subscriber) {
	for _, sub := range subs {
		sub.deliver(version, copyRecords(records))
	}
}

type subscriber struct {
	mu        sync.Mutex
	fn        repository.SnapshotFunc
	delivered uint64
	started   bool
	once      sync.Once
	cancelled atomic.Bool
}

// deliver не отдаёт снимок старше уже доставленного
func (sub *subscriber) deliver(version uint64, records []model.SlotException) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.cancelled.Load() {
		return
	}
	if sub.started && version <= sub.delivered {
		return
	}
	sub.started = true
	sub.delivered = version
	sub.fn(records)
}

func copyRecords(records []model.SlotException) []model.SlotException {
	out := make([]model.SlotException, len(records))
	copy(out, records)
	return out
}
