package notify

import (
	"context"
	"fmt"

	"rentacab/pkg/kafka"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"
)

const EventTypeBookingConfirmed = "booking.confirmed"

// Producer is the slice of the Kafka producer the notifier needs.
type Producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingConfirmation is the payload published for every confirmed booking.
// The rendered Message is included so downstream delivery channels (SMS,
// email) do not each re-implement the wording.
type BookingConfirmation struct {
	BookingID    string `json:"booking_id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
	CarType      string `json:"car_type"`
	NumDays      int    `json:"num_days"`
	Pickup       string `json:"pickup"`
	Dropoff      string `json:"dropoff"`
	TotalPrice   int    `json:"total_price"`
	Message      string `json:"message"`
}

type Notifier struct {
	producer Producer
	source   string
	log      *logger.Logger
}

func NewNotifier(producer Producer, source string, log *logger.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		source:   source,
		log:      log,
	}
}

// BookingConfirmed publishes a confirmation event for the booking. Callers
// treat the returned error as advisory: a booking stands even when its
// notification cannot be sent.
func (n *Notifier) BookingConfirmed(ctx context.Context, user *model.User, booking *model.Booking) error {
	confirmation := BookingConfirmation{
		BookingID:    booking.ID,
		UserID:       user.ID,
		Name:         user.Name,
		MobileNumber: user.MobileNumber,
		CarType:      booking.CarType,
		NumDays:      booking.NumDays,
		Pickup:       booking.Pickup,
		Dropoff:      booking.Dropoff,
		TotalPrice:   booking.TotalPrice,
	}
	confirmation.Message = ComposeMessage(confirmation)

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(confirmation).
		WithEventType(EventTypeBookingConfirmed).
		WithSource(n.source).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	n.log.Info("Booking confirmation published",
		"booking_id", booking.ID,
		"user_id", user.ID,
		"event_id", msg.GetEventID(),
	)
	return nil
}

// ComposeMessage renders the confirmation text sent to the customer.
func ComposeMessage(c BookingConfirmation) string {
	return fmt.Sprintf(
		"Booking Confirmation\n\nDear %s,\n\nYour booking for a %s for %d days has been confirmed.\nPickup: %s\nDropoff: %s\nTotal Price: ₹%d\n\nThank you for your business!",
		c.Name, c.CarType, c.NumDays, c.Pickup, c.Dropoff, c.TotalPrice,
	)
}
