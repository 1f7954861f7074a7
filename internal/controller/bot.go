package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_scheduler/internal/controller/callbacks"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/slot_scheduler/internal/controller/state"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// BotOptions параметры бота, не относящиеся к сервисам
type BotOptions struct {
	IsAdmin         func(telegramID int64) bool
	DialogCacheSize int
	StoreTimeout    time.Duration
}

func NewBotController(
	botInstance *bot.Bot,
	slotService *service.SlotService,
	bookingService *service.BookingService,
	opts BotOptions,
	logger *zap.Logger,
) (*BotController, error) {
	// Создаём менеджер состояний
	stateManager, err := state.NewManager(opts.DialogCacheSize)
	if err != nil {
		return nil, err
	}

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		slotService,
		bookingService,
		stateManager,
		opts.IsAdmin,
		opts.StoreTimeout,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		slotService,
		bookingService,
		state.NewAdapter(stateManager),
		opts.IsAdmin,
		opts.StoreTimeout,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}, nil
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/slots", bot.MatchTypePrefix, c.handlers.HandleSlots)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypePrefix, c.handlers.HandleSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/add", bot.MatchTypePrefix, c.handlers.HandleAdd)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "slots", Description: "📅 Свободное время"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "schedule", Description: "🗓 Расписание (администратор)"},
		{Command: "add", Description: "➕ Добавить время (администратор)"},
		{Command: "cancel", Description: "❌ Отменить ввод"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
