package common

import (
	"context"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
// Это избавляет от дублирования кода получения сообщения, чата и т.д.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// RequireAdmin проверяет что пользователь является администратором
func (hc *HandlerContext) RequireAdmin() error {
	if hc.Handler.IsAdmin == nil || !hc.Handler.IsAdmin(hc.TelegramID) {
		return ErrNotAdmin
	}
	return nil
}

// StoreContext ограничивает операцию записи таймаутом хранилища
func (hc *HandlerContext) StoreContext() (context.Context, context.CancelFunc) {
	if hc.Handler.StoreTimeout <= 0 {
		return context.WithCancel(hc.Ctx)
	}
	return context.WithTimeout(hc.Ctx, hc.Handler.StoreTimeout)
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// Игнорируем ошибку "message is not modified" - это не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}
