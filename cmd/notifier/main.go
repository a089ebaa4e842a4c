package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"rentacab/internal/notify"
	"rentacab/pkg/config"
	"rentacab/pkg/kafka"
	kafka_config "rentacab/pkg/kafka/config"
	kafkamiddleware "rentacab/pkg/kafka/middleware"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "notifier"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting notification worker")

	deliverer := notify.NewLogDeliverer(cfg.Log)

	kafkaCfg := kafka_config.Load()
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.NotificationsTopic,
		ConsumerGroup,
		cfg.NotificationsDLQTopic,
		notify.Handler(deliverer),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafkamiddleware.MetricsConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking confirmations",
		"topic", cfg.NotificationsTopic,
		"group", ConsumerGroup,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notification worker stopped")
}
