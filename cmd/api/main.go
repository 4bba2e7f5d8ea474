package main

import (
	adminhandler "innkeeper/internal/admins/handler"
	adminrepository "innkeeper/internal/admins/repository"
	adminservice "innkeeper/internal/admins/service"
	bookinghandler "innkeeper/internal/bookings/handler"
	bookingrepository "innkeeper/internal/bookings/repository"
	bookingservice "innkeeper/internal/bookings/service"
	bookingvalidator "innkeeper/internal/bookings/validator"
	userhandler "innkeeper/internal/users/handler"
	userrepository "innkeeper/internal/users/repository"
	userservice "innkeeper/internal/users/service"
	"innkeeper/pkg/app"
	"innkeeper/pkg/auth"
	"innkeeper/pkg/config"
	"innkeeper/pkg/contracts"
	"innkeeper/pkg/kafka"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking API")

	events := initEventPublisher(cfg)
	if events != nil {
		defer func() {
			if err := events.Close(); err != nil {
				cfg.Log.Error("Failed to close event producer", "error", err)
			}
		}()
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, initHandlers(cfg, events)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, events *kafka.Producer) []contracts.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	bookingValidator := bookingvalidator.NewBookingValidator(cfg.Log)

	// A typed nil producer must not reach the service as a non-nil
	// interface value.
	var publisher bookingservice.EventPublisher
	if events != nil {
		publisher = events
	}
	bookingSvc := bookingservice.NewBookingService(bookingRepo, bookingValidator, publisher, cfg)

	userRepo := userrepository.NewMongoUserRepository(cfg)
	userSvc := userservice.NewUserService(userRepo, tokens, cfg)

	adminRepo := adminrepository.NewMongoAdminRepository(cfg)
	adminSvc := adminservice.NewAdminService(adminRepo, tokens, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingSvc, tokens, cfg.Log),
		userhandler.NewUserHandler(userSvc, tokens, cfg.Log),
		adminhandler.NewAdminHandler(adminSvc, cfg.Log),
	}
}

func initEventPublisher(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, event publishing disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Event publishing enabled", "topic", cfg.KafkaBookingTopic)
	return producer
}
