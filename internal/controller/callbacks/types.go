package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	stateManager callbacktypes.StateManager,
	isAdmin func(telegramID int64) bool,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		SlotService:    slotService,
		BookingService: bookingService,
		StateManager:   stateManager,
		Logger:         logger,
		IsAdmin:        isAdmin,
		StoreTimeout:   storeTimeout,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
