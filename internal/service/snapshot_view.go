package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository"
)

// SnapshotSource отдаёт последний снимок исключений, полученный из хранилища
type SnapshotSource interface {
	Current() []model.SlotException
}

// SnapshotView read-модель поверх подписки хранилища.
// Каждое уведомление целиком заменяет снимок, слияния дельт нет.
type SnapshotView struct {
	current atomic.Pointer[[]model.SlotException]
	ready   chan struct{}
	once    sync.Once

	mu        sync.RWMutex
	listeners []func([]model.SlotException)

	cancel repository.CancelFunc
	logger *zap.Logger
}

// NewSnapshotView подписывается на хранилище и ждёт первый снимок не дольше ctx
func NewSnapshotView(ctx context.Context, store repository.SlotExceptionStore, logger *zap.Logger) (*SnapshotView, error) {
	v := &SnapshotView{
		ready:  make(chan struct{}),
		logger: logger,
	}
	empty := []model.SlotException{}
	v.current.Store(&empty)

	cancel, err := store.Subscribe(ctx, v.replace)
	if err != nil {
		return nil, fmt.Errorf("subscribe to slot exceptions: %w", err)
	}
	v.cancel = cancel

	select {
	case <-v.ready:
	case <-ctx.Done():
		cancel()
		return nil, fmt.Errorf("wait first snapshot: %w", ctx.Err())
	}

	return v, nil
}

// Current возвращает последний снимок; вызывающий не должен его изменять
func (v *SnapshotView) Current() []model.SlotException {
	return *v.current.Load()
}

// Ready закрывается после первой доставки
func (v *SnapshotView) Ready() <-chan struct{} {
	return v.ready
}

// OnChange регистрирует слушателя, вызываемого после каждой замены снимка
func (v *SnapshotView) OnChange(fn func([]model.SlotException)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

// Close отменяет подписку; повторный вызов безопасен
func (v *SnapshotView) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *SnapshotView) replace(records []model.SlotException) {
	if records == nil {
		records = []model.SlotException{}
	}
	v.current.Store(&records)
	v.once.Do(func() { close(v.ready) })

	v.logger.Debug("Slot snapshot replaced", zap.Int("records", len(records)))

	v.mu.RLock()
	listeners := v.listeners
	v.mu.RUnlock()
	for _, fn := range listeners {
		fn(records)
	}
}
