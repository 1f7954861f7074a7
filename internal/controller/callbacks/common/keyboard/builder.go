package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Grid раскладывает кнопки в ряды по perRow штук
func (b *Builder) Grid(buttons []models.InlineKeyboardButton, perRow int) *Builder {
	if perRow <= 0 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		row := make([]models.InlineKeyboardButton, end-start)
		copy(row, buttons[start:end])
		b.rows = append(b.rows, row)
	}
	return b
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
