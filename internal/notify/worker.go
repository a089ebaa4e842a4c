package notify

import (
	"context"
	"fmt"

	"rentacab/pkg/kafka"
	"rentacab/pkg/logger"
)

// Deliverer sends a rendered confirmation to the customer over some channel.
type Deliverer interface {
	Deliver(ctx context.Context, confirmation BookingConfirmation) error
}

// LogDeliverer writes confirmations to the service log. It stands in for an
// SMS or email gateway in environments without one.
type LogDeliverer struct {
	log *logger.Logger
}

func NewLogDeliverer(log *logger.Logger) *LogDeliverer {
	return &LogDeliverer{log: log}
}

func (d *LogDeliverer) Deliver(ctx context.Context, confirmation BookingConfirmation) error {
	d.log.Info("Delivering booking confirmation",
		"booking_id", confirmation.BookingID,
		"mobile_number", confirmation.MobileNumber,
		"message", confirmation.Message,
	)
	return nil
}

// Handler adapts a Deliverer into a consumer message handler. Malformed
// payloads are permanent failures so they go straight to the DLQ instead of
// being retried.
func Handler(deliverer Deliverer) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var confirmation BookingConfirmation
		if err := msg.DecodeValue(&confirmation); err != nil {
			return kafka.NewPermanentError("failed to decode booking confirmation", err)
		}

		if confirmation.BookingID == "" {
			return kafka.NewPermanentError("booking confirmation missing booking_id", nil)
		}

		if confirmation.Message == "" {
			confirmation.Message = ComposeMessage(confirmation)
		}

		if err := deliverer.Deliver(ctx, confirmation); err != nil {
			return fmt.Errorf("failed to deliver confirmation for booking %s: %w", confirmation.BookingID, err)
		}

		return nil
	}
}
