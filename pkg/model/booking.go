package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is immutable after creation except for cancellation, which sets
// status and cancelled_at; records are never deleted. Pickup and dropoff are
// calendar dates (YYYY-MM-DD) with no timezone attached.
type Booking struct {
	ID              string     `json:"booking_id" bson:"_id"`
	UserID          string     `json:"user_id" bson:"user_id"`
	CarType         string     `json:"car_type" bson:"car_type"`
	NumDays         int        `json:"num_days" bson:"num_days"`
	Pickup          string     `json:"pickup" bson:"pickup"`
	Dropoff         string     `json:"dropoff" bson:"dropoff"`
	SpecialRequests string     `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	PaymentMode     string     `json:"payment_mode" bson:"payment_mode"`
	TotalPrice      int        `json:"total_price" bson:"total_price"`
	Status          string     `json:"status" bson:"status"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// BookingRequest is the inbound payload for POST /book/:car_type.
type BookingRequest struct {
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	SpecialRequests string `json:"special_requests" validate:"max=500"`
	PaymentMode     string `json:"payment_mode" validate:"required"`
}
