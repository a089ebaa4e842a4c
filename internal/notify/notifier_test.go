package notify

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"rentacab/pkg/kafka"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"
)

type fakeProducer struct {
	PublishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
}

func (f *fakeProducer) Publish(ctx context.Context, msg kafka.Message) error {
	f.published = append(f.published, msg)
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, msg)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "text", Output: os.Stderr, Service: "test"})
}

func testBooking() (*model.User, *model.Booking) {
	user := &model.User{
		ID:           "u-1",
		Name:         "Asha Verma",
		MobileNumber: "+919876543210",
	}
	booking := &model.Booking{
		ID:         "b-1",
		UserID:     "u-1",
		CarType:    "sedan",
		NumDays:    3,
		Pickup:     "2026-09-10",
		Dropoff:    "2026-09-13",
		TotalPrice: 7500,
		Status:     model.StatusConfirmed,
	}
	return user, booking
}

func TestBookingConfirmedPublishes(t *testing.T) {
	producer := &fakeProducer{}
	notifier := NewNotifier(producer, "rentals", testLogger())

	user, booking := testBooking()
	if err := notifier.BookingConfirmed(context.Background(), user, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("expected one published message, got %d", len(producer.published))
	}

	msg := producer.published[0]
	if msg.Key != "b-1" {
		t.Errorf("expected message keyed by booking ID, got %s", msg.Key)
	}
	if msg.GetEventType() != EventTypeBookingConfirmed {
		t.Errorf("expected event type %s, got %s", EventTypeBookingConfirmed, msg.GetEventType())
	}

	var confirmation BookingConfirmation
	if err := msg.DecodeValue(&confirmation); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if confirmation.TotalPrice != 7500 {
		t.Errorf("expected total price 7500, got %d", confirmation.TotalPrice)
	}
	if !strings.Contains(confirmation.Message, "Dear Asha Verma") {
		t.Errorf("message missing greeting: %s", confirmation.Message)
	}
	if !strings.Contains(confirmation.Message, "₹7500") {
		t.Errorf("message missing price: %s", confirmation.Message)
	}
	if !strings.Contains(confirmation.Message, "for a sedan for 3 days") {
		t.Errorf("message missing booking summary: %s", confirmation.Message)
	}
}

func TestBookingConfirmedPublishFailure(t *testing.T) {
	producer := &fakeProducer{
		PublishFunc: func(ctx context.Context, msg kafka.Message) error {
			return errors.New("broker unavailable")
		},
	}
	notifier := NewNotifier(producer, "rentals", testLogger())

	user, booking := testBooking()
	if err := notifier.BookingConfirmed(context.Background(), user, booking); err == nil {
		t.Fatal("expected publish error to surface to the caller")
	}
}

type fakeDeliverer struct {
	delivered []BookingConfirmation
	err       error
}

func (f *fakeDeliverer) Deliver(ctx context.Context, confirmation BookingConfirmation) error {
	f.delivered = append(f.delivered, confirmation)
	return f.err
}

func TestHandlerDelivers(t *testing.T) {
	deliverer := &fakeDeliverer{}
	handler := Handler(deliverer)

	msg := kafka.NewMessage().
		WithKey("b-1").
		WithValue(BookingConfirmation{BookingID: "b-1", Name: "Asha Verma", CarType: "suv", NumDays: 2, TotalPrice: 8000}).
		Build()

	if err := handler(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deliverer.delivered) != 1 {
		t.Fatalf("expected one delivery, got %d", len(deliverer.delivered))
	}
	if deliverer.delivered[0].Message == "" {
		t.Error("expected message to be rendered before delivery")
	}
}

func TestHandlerRejectsMalformedPayload(t *testing.T) {
	handler := Handler(&fakeDeliverer{})

	msg := kafka.NewMessage().WithKey("b-1").WithRawValue([]byte("{not json")).Build()

	err := handler(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}

	// Malformed payloads must be permanent so they are not retried.
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Error("malformed payload should classify as permanent")
	}
}
