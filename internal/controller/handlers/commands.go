package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Здесь можно посмотреть свободное время для записи.\n\n"+
			"Доступные команды:\n"+
			"/slots - Свободное время на сегодня\n"+
			"/slots 2025-06-10 - Свободное время на дату\n"+
			"/help - Справка",
		user.FirstName,
	)

	if h.isAdmin != nil && h.isAdmin(user.ID) {
		welcomeText += "\n\nДля администратора:\n" +
			"/schedule - Управление расписанием\n" +
			"/add ДАТА ЧЧ:ММ - Добавить время"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/slots [дата] - Свободное время (дата ГГГГ-ММ-ДД, сегодня или завтра)\n" +
		"/help - Показать эту справку\n\n" +
		"Для администратора:\n" +
		"/schedule [дата] - Расписание дня с кнопками управления\n" +
		"/add ДАТА ЧЧ:ММ - Добавить дополнительное время\n" +
		"/cancel - Отменить ввод\n\n" +
		"🕐 постоянное время можно скрыть на один день, ➕ дополнительное удалить."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		return
	case state.StateEnteringExtraTime:
		h.handleExtraTime(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// handleExtraTime обрабатывает ввод времени дополнительного слота
func (h *Handlers) handleExtraTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	hhmm := strings.TrimSpace(update.Message.Text)

	if !h.requireAdmin(ctx, b, update) {
		h.stateManager.ClearState(telegramID)
		return
	}

	dateData, ok := h.stateManager.GetData(telegramID, state.DataDate)
	date, isString := dateData.(string)
	if !ok || !isString {
		h.logger.Error("Missing date for extra time dialog", zap.Int64("telegram_id", telegramID))
		h.sendError(ctx, b, chatID, "❌ Ошибка: данные не найдены. Начните заново через /schedule")
		h.stateManager.ClearState(telegramID)
		return
	}

	opCtx, cancel := h.storeContext(ctx)
	defer cancel()

	if _, err := h.slotService.AddExtra(opCtx, date, hhmm); err != nil {
		h.logger.Warn("Add extra from dialog failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("date", date),
			zap.String("time", hhmm),
			zap.Error(err))
		// Оставляем диалог открытым, чтобы можно было ввести другое время
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте еще раз или отправьте /cancel для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendSchedule(ctx, b, chatID, date, fmt.Sprintf("✅ Время %s добавлено\n\n", hhmm))
}
