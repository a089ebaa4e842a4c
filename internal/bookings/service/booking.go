package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "rentacab/internal/bookings/errors"
	"rentacab/internal/bookings/repository"
	"rentacab/internal/bookings/validator"
	usersservice "rentacab/internal/users/service"
	"rentacab/pkg/config"
	apperrors "rentacab/pkg/errors"
	"rentacab/pkg/model"
	"rentacab/pkg/pricing"
	"rentacab/pkg/sanitizer"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ConfirmationNotifier publishes a confirmation for a booking. Implemented by
// notify.Notifier.
type ConfirmationNotifier interface {
	BookingConfirmed(ctx context.Context, user *model.User, booking *model.Booking) error
}

type BookingService interface {
	Categories() []pricing.Category
	CategoryFor(carType string) pricing.Category
	Create(ctx context.Context, userID, carType string, req *model.BookingRequest) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	Cancel(ctx context.Context, userID, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	users     usersservice.UserService
	notifier  ConfirmationNotifier
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	users usersservice.UserService,
	notifier ConfirmationNotifier,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *bookingService) Categories() []pricing.Category {
	return pricing.Categories()
}

// CategoryFor resolves a single category. Unknown categories come back with a
// zero rate rather than an error; they remain bookable.
func (s *bookingService) CategoryFor(carType string) pricing.Category {
	carType = sanitizer.TrimAndNormalize(carType)
	return pricing.Category{
		Name:        carType,
		PricePerDay: pricing.DailyRate(carType),
	}
}

func (s *bookingService) Create(ctx context.Context, userID, carType string, req *model.BookingRequest) (*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	// The category is stored as the caller wrote it; the rate lookup is
	// case-insensitive on its own.
	carType = sanitizer.TrimAndNormalize(carType)
	if carType == "" {
		return nil, apperrors.InvalidInput("Car type cannot be empty")
	}
	req.SpecialRequests = sanitizer.NormalizeFreeText(req.SpecialRequests)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, apperrors.InvalidInput("check_in must be a date in YYYY-MM-DD format")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidInput("check_out must be a date in YYYY-MM-DD format")
	}

	// Duration is priced exactly as requested. Same-day rentals come out at
	// zero days, and a check_out before check_in yields a negative total.
	numDays := int(checkOut.Sub(checkIn).Hours() / 24)

	booking := &model.Booking{
		ID:              uuid.New().String(),
		UserID:          userID,
		CarType:         carType,
		NumDays:         numDays,
		Pickup:          req.CheckIn,
		Dropoff:         req.CheckOut,
		SpecialRequests: req.SpecialRequests,
		PaymentMode:     req.PaymentMode,
		TotalPrice:      pricing.Total(carType, numDays),
		Status:          model.StatusConfirmed,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", userID,
		"car_type", carType,
		"num_days", numDays,
		"total_price", booking.TotalPrice,
	)

	s.notifyConfirmed(ctx, userID, booking)

	return booking, nil
}

// notifyConfirmed sends the confirmation on a best-effort basis. Failures are
// logged for the on-call to see but never unwind the booking.
func (s *bookingService) notifyConfirmed(ctx context.Context, userID string, booking *model.Booking) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Booking confirmation skipped, could not load user",
			"booking_id", booking.ID,
			"user_id", userID,
			"error", err,
		)
		return
	}

	if err := s.notifier.BookingConfirmed(ctx, user, booking); err != nil {
		s.cfg.Log.Error("Booking confirmation notification failed",
			"booking_id", booking.ID,
			"user_id", userID,
			"error", err,
		)
	}
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, id string) (*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.CancelOwned(ctx, id, userID, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		// Not found and owned-by-someone-else are reported identically so the
		// response does not reveal whether the booking exists.
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "user_id", userID)
	return booking, nil
}
