package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkoval91/flightinventory/api"
	"github.com/dkoval91/flightinventory/config"
	"github.com/dkoval91/flightinventory/internal/bootstrap"
	"github.com/dkoval91/flightinventory/internal/cache"
	"github.com/dkoval91/flightinventory/internal/kafka"
	"github.com/dkoval91/flightinventory/internal/repository"
	"github.com/dkoval91/flightinventory/internal/service/booking"
	"github.com/dkoval91/flightinventory/internal/service/inventory"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	inventoryService := inventory.NewInventoryService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		booking.NewPNRGenerator(),
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithCancelWindow(time.Duration(cfg.Booking.CancelWindowHours)*time.Hour),
	)

	flightHandler := api.NewFlightHandler(inventoryService)
	bookingHandler := api.NewBookingHandler(bookingService)

	if err := bootstrap.Run(ctx, cfg, flightHandler, bookingHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
