package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/slot_scheduler/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	SlotService    *service.SlotService
	BookingService *service.BookingService
	StateManager   StateManager
	Logger         *zap.Logger

	// IsAdmin проверяет telegram id по списку администраторов
	IsAdmin func(telegramID int64) bool

	// StoreTimeout ограничивает одну операцию записи в хранилище
	StoreTimeout time.Duration
}
