package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSlots обрабатывает команду /slots [дата] - свободное время для клиента
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	date, err := h.dateFromArgs(CommandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, kb, err := common.BuildSlotsScreen(h.bookingService, date)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendScreen(ctx, b, chatID, text, kb)
}

// HandleSchedule обрабатывает команду /schedule [дата] - управление днём
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	date, err := h.dateFromArgs(CommandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendSchedule(ctx, b, chatID, date, "")
}

// HandleAdd обрабатывает команду /add ДАТА ЧЧ:ММ
func (h *Handlers) HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := CommandArgs(update.Message.Text)
	if len(args) != 2 {
		h.sendError(ctx, b, chatID, "❌ Используйте: /add ГГГГ-ММ-ДД ЧЧ:ММ\n\nНапример: /add 2025-06-10 09:30")
		return
	}

	date, err := h.dateFromArgs(args[:1])
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	hhmm := args[1]

	opCtx, cancel := h.storeContext(ctx)
	defer cancel()

	if _, err := h.slotService.AddExtra(opCtx, date, hhmm); err != nil {
		h.logger.Warn("Add extra command failed",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("date", date),
			zap.String("time", hhmm),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendSchedule(ctx, b, chatID, date, fmt.Sprintf("✅ Время %s добавлено\n\n", hhmm))
}

func (h *Handlers) sendSchedule(ctx context.Context, b *bot.Bot, chatID int64, date, prefix string) {
	text, kb, err := common.BuildScheduleScreen(h.bookingService, date)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendScreen(ctx, b, chatID, prefix+text, kb)
}

func (h *Handlers) dateFromArgs(args []string) (string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	return ResolveDateArg(arg, h.bookingService.Today(), h.bookingService.ShiftDate)
}
