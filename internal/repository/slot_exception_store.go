package repository

import (
	"context"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// SnapshotFunc получает полный текущий набор исключений при каждом изменении коллекции
type SnapshotFunc func(records []model.SlotException)

// CancelFunc останавливает доставку снимков. Можно вызывать многократно и из самого обработчика.
type CancelFunc func()

// SlotExceptionStore хранилище исключений слотов.
// Единственный арбитр идентичности записей; update и delete атомарны на уровне записи.
type SlotExceptionStore interface {
	// Subscribe сразу доставляет текущий набор и затем каждый новый снимок
	Subscribe(ctx context.Context, fn SnapshotFunc) (CancelFunc, error)
	// List возвращает текущий набор записей
	List(ctx context.Context) ([]model.SlotException, error)
	// Create добавляет запись и возвращает присвоенный id
	Create(ctx context.Context, record model.SlotException) (string, error)
	// SetRemoved меняет только флаг removed; model.ErrNotFound если записи нет
	SetRemoved(ctx context.Context, id string, removed bool) error
	// Delete удаляет запись; model.ErrNotFound если её уже нет
	Delete(ctx context.Context, id string) error
}
