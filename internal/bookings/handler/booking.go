package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"rentacab/internal/bookings/service"
	"rentacab/internal/sessions"
	httputil "rentacab/pkg/http"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	auth    *sessions.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *sessions.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *BookingHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Categories()); err != nil {
		h.log.Error("failed to write success response", "handler", "Categories", "operation", "WriteSuccess", "error", err)
	}
}

// Landing and ThankYou stand in for the rendered pages; real templating lives
// in a frontend, not here.
func (h *BookingHandler) Landing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]string{
		"message": "Welcome to the car rental service",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Landing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ThankYou(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]string{
		"message": "Thank you for your business!",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ThankYou", "operation", "WriteSuccess", "error", err)
	}
}

// SelectCategory turns a category choice into a redirect to its booking entry,
// keeping the category in the path like the booking routes expect.
func (h *BookingHandler) SelectCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var selection struct {
		CarType string `json:"car_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil || selection.CarType == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "car_type is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SelectCategory", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	http.Redirect(w, r, "/book/"+url.PathEscape(selection.CarType), http.StatusSeeOther)
}

// Entry returns the category behind a booking form. Unknown categories show a
// zero daily rate and stay bookable.
func (h *BookingHandler) Entry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := h.service.CategoryFor(ps.ByName("car_type"))
	if err := httputil.WriteSuccess(w, category); err != nil {
		h.log.Error("failed to write success response", "handler", "Entry", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, _ := sessions.FromContext(r.Context())

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), session.UserID, ps.ByName("car_type"), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, _ := sessions.FromContext(r.Context())

	bookings, err := h.service.ListByUser(r.Context(), session.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MyBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "MyBookings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, _ := sessions.FromContext(r.Context())

	booking, err := h.service.Cancel(r.Context(), session.UserID, ps.ByName("booking_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Landing)
	router.GET("/thank_you", h.ThankYou)
	// Browsing categories needs no session; booking one does.
	router.GET("/car_type", h.Categories)
	router.POST("/car_type", h.SelectCategory)
	router.GET("/book/:car_type", h.auth.Require(h.Entry))
	router.POST("/book/:car_type", h.auth.Require(h.Create))
	router.GET("/my_bookings", h.auth.Require(h.MyBookings))
	router.POST("/cancel_booking/:booking_id", h.auth.Require(h.Cancel))
}
