package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/app"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/carrier"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/config"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/handler"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/notify"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/postgres"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/repo"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/cache"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/trm"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db, trm.WithTxOptions(&sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	}))
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	carrierClient := carrier.NewClient(conf.Carrier)
	notifier := notify.NewKafkaNotifier(logger, conf.Kafka)

	orderService := service.NewOrderService(logger, txManager, orderRepo, orderCache, carrierClient, notifier)

	httpHandler := handler.NewHTTPHandler(logger, orderService)
	webhookHandler := handler.NewWebhookHandler(logger, orderService, conf.Payment.ServerKey)
	adminHandler := handler.NewAdminHandler(logger, orderService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler, webhookHandler, adminHandler)
	app.SetStarters(orderCache)
	app.SetClosers(notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// blocks until SIGTERM/SIGINT or a fatal component error
	panicIfErr("application failed", app.Start(ctx))

	// let in-flight carrier bookings land before the writer closes
	orderService.WaitForBookings()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
