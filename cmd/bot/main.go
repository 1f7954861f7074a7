package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/app"
	"github.com/Freeeeeet/slot_scheduler/internal/availability"
	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/config"
	"github.com/Freeeeeet/slot_scheduler/internal/controller"
	"github.com/Freeeeeet/slot_scheduler/internal/events"
	apihttp "github.com/Freeeeeet/slot_scheduler/internal/http"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Slot scheduler stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting slot scheduler",
		zap.String("timezone", cfg.Slots.Timezone),
		zap.Strings("fixed_times", cfg.Slots.FixedTimes),
		zap.Bool("memory_store", cfg.UseMemoryStore()),
		zap.Bool("bot_enabled", cfg.BotEnabled()))

	loc, err := clock.LoadLocation(cfg.Slots.Timezone)
	if err != nil {
		return err
	}
	clk := clock.New(loc, time.Now)

	template, err := availability.NewTemplate(cfg.Slots.FixedTimes)
	if err != nil {
		return err
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	waitCtx, cancelWait := context.WithTimeout(ctx, cfg.Slots.StoreTimeout)
	view, err := service.NewSnapshotView(waitCtx, store, logger)
	cancelWait()
	if err != nil {
		return err
	}
	defer view.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		logger.Info("RabbitMQ is disabled, slot events will not be published")
	}

	slotService := service.NewSlotService(store, view, template, clk, publisher, logger)
	bookingService := service.NewBookingService(view, template, clk)

	scheduler := app.NewScheduler(slotService, cfg.Slots.PurgeInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	slotController := apihttp.NewSlotController(slotService, bookingService, cfg.Admin.APIToken, cfg.Slots.StoreTimeout, logger)
	server := apihttp.NewServer(cfg.HTTPAddr, apihttp.NewRouter(slotController, logger, cfg.IsProduction()), logger)
	server.Start()

	if cfg.BotEnabled() {
		if err := startBot(ctx, cfg, slotService, bookingService, logger); err != nil {
			return err
		}
	} else {
		logger.Warn("TELEGRAM_TOKEN is not set, bot is disabled")
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown failed", zap.Error(err))
	}

	return nil
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	slotService *service.SlotService,
	bookingService *service.BookingService,
	logger *zap.Logger,
) error {
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController, err := controller.NewBotController(b, slotService, bookingService, controller.BotOptions{
		IsAdmin:         cfg.IsAdmin,
		DialogCacheSize: cfg.Bot.DialogCacheSize,
		StoreTimeout:    cfg.Slots.StoreTimeout,
	}, logger)
	if err != nil {
		return err
	}

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот продолжит работу
		logger.Warn("Bot commands were not registered", zap.Error(err))
	}

	go botController.Start(ctx)
	return nil
}
