package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseCallbackArgs отделяет префикс и возвращает n аргументов.
// Последний аргумент забирает остаток строки, поэтому время ЧЧ:ММ не разрезается.
// Например: ParseCallbackArgs("suppress:2025-06-10:08:30", "suppress:", 2) -> [2025-06-10 08:30]
func ParseCallbackArgs(data, prefix string, n int) ([]string, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok || rest == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	args := strings.SplitN(rest, ":", n)
	if len(args) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return args, nil
}

// IsMessageNotModifiedError проверяет ошибку Telegram при редактировании без изменений
func IsMessageNotModifiedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "message is not modified")
}
