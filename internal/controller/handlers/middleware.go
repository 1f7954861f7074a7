package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет что пользователь входит в список администраторов
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	if h.isAdmin == nil || !h.isAdmin(update.Message.From.ID) {
		h.logger.Warn("Admin command rejected",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("text", update.Message.Text))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только администраторам.")
		return false
	}

	return true
}

// storeContext ограничивает операцию записи таймаутом хранилища
func (h *Handlers) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.storeTimeout)
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendScreen отправляет экран с клавиатурой и логирует если не удалось
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
