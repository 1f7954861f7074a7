package common

import (
	"context"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithAdmin создаёт HandlerContext и проверяет что пользователь - администратор
// При ошибке автоматически отвечает пользователю
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireAdmin(); err != nil {
		h.Logger.Warn("Admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}
