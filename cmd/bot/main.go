package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"lunar_tracker_bot/internal/app"
	"lunar_tracker_bot/internal/domain/moon"
	"lunar_tracker_bot/internal/infra/config"
	idb "lunar_tracker_bot/internal/infra/database"
	"lunar_tracker_bot/internal/infra/logger"
	"lunar_tracker_bot/internal/infra/scheduler"
	"lunar_tracker_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Lunar Tracker Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Timezone,
		"admin_id":    cfg.AdminTelegramID,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	if err := idb.EnsureSchema(ctx, db); err != nil {
		mainLogger.Fatalf("Could not prepare database schema: %v", err)
	}
	mainLogger.Info("Database connection established successfully.")

	// Initialize Repositories
	subscriberRepo := idb.NewPostgresSubscriberRepository(db)
	alertRepo := idb.NewPostgresAlertRepository(db)

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	if err := bot.SetCommands(telegram.Commands); err != nil {
		mainLogger.WithError(err).Warn("Could not publish command menu")
	}

	// Initialize Services
	calc := moon.Default
	lunarService := app.NewLunarService(calc, cfg.Location)
	subscriptionService := app.NewSubscriptionService(subscriberRepo, cfg.AdminTelegramID)
	alertService := app.NewAlertServiceImpl(
		calc,
		subscriberRepo,
		alertRepo,
		telegram.NewTelebotAdapter(bot),
		logger.Component("alert_service"),
		cfg.Location,
		cfg.AlertLeadDays,
	)

	// Initialize AlertScheduler
	alertScheduler := scheduler.NewAlertScheduler(alertService, logger.Component("scheduler"), cfg.Location, cfg.CronSpecDailyAlert)
	if err := alertScheduler.Start(); err != nil {
		mainLogger.Fatalf("Could not start alert scheduler: %v", err)
	}

	// Register Handlers
	handlerLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(ctx, bot, cfg, subscriptionService, handlerLogger)
	telegram.RegisterLunarHandlers(bot, lunarService, handlerLogger)
	telegram.RegisterSubscriptionHandlers(ctx, bot, subscriptionService, handlerLogger)
	telegram.RegisterAlertHandlers(ctx, bot, cfg.AdminTelegramID, alertService, handlerLogger)
	mainLogger.Info("Command handlers registered. Bot and scheduler are starting...")

	go bot.Start()

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	alertScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
