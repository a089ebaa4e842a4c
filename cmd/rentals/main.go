package main

import (
	bookinghandler "rentacab/internal/bookings/handler"
	bookingrepository "rentacab/internal/bookings/repository"
	bookingservice "rentacab/internal/bookings/service"
	bookingvalidator "rentacab/internal/bookings/validator"
	"rentacab/internal/notify"
	"rentacab/internal/sessions"
	userhandler "rentacab/internal/users/handler"
	userrepository "rentacab/internal/users/repository"
	userservice "rentacab/internal/users/service"
	uservalidator "rentacab/internal/users/validator"
	"rentacab/pkg/app"
	"rentacab/pkg/config"
	"rentacab/pkg/kafka"
	kafka_config "rentacab/pkg/kafka/config"
	kafkamiddleware "rentacab/pkg/kafka/middleware"
	"rentacab/pkg/sealer"
)

const ServiceName = "rentals"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Rentals service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	auth, sessionStore := initSessions(cfg)
	userService := initUsers(cfg)
	bookingService := initBookings(cfg, userService, producer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		userhandler.NewUserHandler(userService, sessionStore, auth, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, auth, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.NotificationsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafkamiddleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.NotificationsTopic)
	return producer
}

func initSessions(cfg *config.Config) (*sessions.Authenticator, sessions.Store) {
	cookieSealer, err := sealer.New(cfg.SessionSecret)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize cookie sealer", "error", err)
	}

	store := sessions.NewRedisStore(cfg.Client.Redis, cfg.SessionTTL)
	auth := sessions.NewAuthenticator(store, cookieSealer, cfg.SessionTTL, cfg.Log)

	cfg.Log.Info("Session layer initialized", "ttl", cfg.SessionTTL)
	return auth, store
}

func initUsers(cfg *config.Config) userservice.UserService {
	userRepo := userrepository.NewMongoUserRepository(cfg)
	userService := userservice.NewUserService(
		userRepo,
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName)
	return userService
}

func initBookings(cfg *config.Config, users userservice.UserService, producer *kafka.Producer) bookingservice.BookingService {
	notifier := notify.NewNotifier(producer, ServiceName, cfg.Log)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		users,
		notifier,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
