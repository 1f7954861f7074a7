package handlers

import (
	"time"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/state"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	slotService    *service.SlotService
	bookingService *service.BookingService
	stateManager   *state.Manager
	isAdmin        func(telegramID int64) bool
	storeTimeout   time.Duration
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	stateManager *state.Manager,
	isAdmin func(telegramID int64) bool,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		slotService:    slotService,
		bookingService: bookingService,
		stateManager:   stateManager,
		isAdmin:        isAdmin,
		storeTimeout:   storeTimeout,
		logger:         logger,
	}
}
