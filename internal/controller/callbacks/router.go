package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/customer"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == keyboard.Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Customer =====
	case strings.HasPrefix(data, common.SlotsDay):
		customer.HandleSlotsDay(ctx, b, callback, h)

	// ===== Admin: schedule management =====
	case strings.HasPrefix(data, common.ScheduleDay):
		admin.HandleScheduleDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SuppressFixed):
		admin.HandleSuppressFixed(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RestoreFixed):
		admin.HandleRestoreFixed(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RemoveExtra):
		admin.HandleRemoveExtra(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AddExtra):
		admin.HandleAddExtraPrompt(ctx, b, callback, h)
	case data == common.CancelDialog:
		admin.HandleCancelDialog(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
