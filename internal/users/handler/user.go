package handler

import (
	"encoding/json"
	"net/http"

	"rentacab/internal/sessions"
	"rentacab/internal/users/service"
	httputil "rentacab/pkg/http"
	"rentacab/pkg/logger"
	"rentacab/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	store   sessions.Store
	auth    *sessions.Authenticator
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, store sessions.Store, auth *sessions.Authenticator, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		store:   store,
		auth:    auth,
		log:     log,
	}
}

// RegistrationForm describes the fields POST /register expects, standing in
// for the rendered signup page.
func (h *UserHandler) RegistrationForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]any{
		"fields": []string{"name", "email", "password", "mobile_number"},
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "RegistrationForm", "operation", "WriteSuccess", "error", err)
	}
}

// LoginForm is the login counterpart of RegistrationForm.
func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]any{
		"fields": []string{"email", "password"},
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "LoginForm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.service.Register(r.Context(), &reg)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.service.Authenticate(r.Context(), &creds)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	session, err := h.store.Create(r.Context(), user.ID, user.Name)
	if err != nil {
		h.log.Error("failed to create session", "handler", "Login", "user_id", user.ID, "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.auth.IssueCookie(w, session.ID); err != nil {
		h.log.Error("failed to issue session cookie", "handler", "Login", "user_id", user.ID, "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := sessions.FromContext(r.Context())
	if ok {
		if err := h.store.Delete(r.Context(), session.ID); err != nil {
			h.log.Error("failed to delete session", "handler", "Logout", "session_id", session.ID, "error", err)
		}
	}

	h.auth.ClearCookie(w)
	httputil.WriteNoContent(w)
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/register", h.RegistrationForm)
	router.POST("/register", h.Register)
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.Login)
	router.POST("/logout", h.auth.Require(h.Logout))
}
