package customer

import (
	"context"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSlotsDay показывает клиенту свободное время на выбранный день
func HandleSlotsDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	args, err := common.ParseCallbackArgs(callback.Data, common.SlotsDay, 1)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	text, kb, err := common.BuildSlotsScreen(h.BookingService, args[0])
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show slots",
			zap.String("date", args[0]),
			zap.Error(err))
	}
	hc.Answer("")
}
