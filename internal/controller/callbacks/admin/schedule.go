package admin

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/state"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Schedule Management Handlers
// ========================

// HandleScheduleDay показывает расписание выбранного дня
func HandleScheduleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseCallbackArgs(callback.Data, common.ScheduleDay, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		refresh(hc, args[0])
		hc.Answer("")
	})
}

// HandleSuppressFixed скрывает постоянное время на дату
func HandleSuppressFixed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseCallbackArgs(callback.Data, common.SuppressFixed, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		date, hhmm := args[0], args[1]

		opCtx, cancel := hc.StoreContext()
		defer cancel()

		if _, err := h.SlotService.SuppressFixed(opCtx, date, hhmm); err != nil {
			h.Logger.Warn("Suppress from bot failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("date", date),
				zap.String("time", hhmm),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		refresh(hc, date)
		hc.Answer(fmt.Sprintf("🚫 %s скрыто", hhmm))
	})
}

// HandleRestoreFixed возвращает скрытое постоянное время
func HandleRestoreFixed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseCallbackArgs(callback.Data, common.RestoreFixed, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		date, hhmm := args[0], args[1]

		opCtx, cancel := hc.StoreContext()
		defer cancel()

		if _, err := h.SlotService.AddExtra(opCtx, date, hhmm); err != nil {
			h.Logger.Warn("Restore from bot failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("date", date),
				zap.String("time", hhmm),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		refresh(hc, date)
		hc.Answer(fmt.Sprintf("♻️ %s снова доступно", hhmm))
	})
}

// HandleRemoveExtra удаляет дополнительный слот
func HandleRemoveExtra(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseCallbackArgs(callback.Data, common.RemoveExtra, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		id, date := args[0], args[1]

		opCtx, cancel := hc.StoreContext()
		defer cancel()

		if err := h.SlotService.RemoveExtra(opCtx, id); err != nil {
			h.Logger.Warn("Remove from bot failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("id", id),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		refresh(hc, date)
		hc.Answer("🗑 Слот удалён")
	})
}

// HandleAddExtraPrompt просит ввести время дополнительного слота
func HandleAddExtraPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseCallbackArgs(callback.Data, common.AddExtra, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		date := args[0]

		if h.BookingService.IsPast(date) {
			hc.AnswerAlert(common.ErrorMessage(model.ErrPastDate))
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateEnteringExtraTime))
		hc.SetData(state.DataDate, date)

		text := fmt.Sprintf(
			"➕ <b>Новое время на %s</b>\n\n"+
				"Отправьте время в формате <b>ЧЧ:ММ</b> (например, 09:30)\n"+
				"или /cancel для отмены.",
			formatting.FormatFriendlyDate(date),
		)
		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.CancelDialog)).Build()

		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send add extra prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCancelDialog отменяет ввод времени
func HandleCancelDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	if err := hc.EditMessage("✅ Операция отменена.", nil); err != nil {
		h.Logger.Warn("Failed to edit cancelled dialog", zap.Error(err))
	}
	hc.Answer("")
}

// refresh перерисовывает экран дня в том же сообщении
func refresh(hc *common.HandlerContext, date string) {
	text, kb, err := common.BuildScheduleScreen(hc.Handler.BookingService, date)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to build schedule screen",
			zap.String("date", date),
			zap.Error(err))
		return
	}

	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to refresh schedule screen",
			zap.String("date", date),
			zap.Error(err))
	}
}
