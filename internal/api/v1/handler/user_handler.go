package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/middleware"
	"coursehub/internal/service"
	"coursehub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// UserHandler handles user signup, signin and purchase listing.
type UserHandler struct {
	users        service.UserService
	validate     *validator.Validate
	cookieSecure bool
	logger       zerolog.Logger
}

func NewUserHandler(users service.UserService, v *validator.Validate, cookieSecure bool, logger zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, validate: v, cookieSecure: cookieSecure, logger: logger}
}

// RegisterRoutes mounts v1 user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, userAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /user/signup", h.signup)
	mux.HandleFunc("POST /user/signin", h.signin)
	mux.Handle("GET /user/purchases", userAuth(http.HandlerFunc(h.purchases)))
}

func (h *UserHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	err := h.users.Signup(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email is already taken")
	case err != nil:
		h.logger.Error().Err(err).Msg("user signup failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeMessage(w, http.StatusOK, "You are signed up")
	}
}

func (h *UserHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusForbidden, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusForbidden, validation.FirstError(err))
		return
	}

	token, err := h.users.Signin(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Incorrect credentials")
	case err != nil:
		h.logger.Error().Err(err).Msg("user signin failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		setTokenCookie(w, token, h.cookieSecure)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "You are signed in",
			"token":   token,
		})
	}
}

func (h *UserHandler) purchases(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	purchases, courses, err := h.users.Purchases(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list purchases")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if len(purchases) == 0 {
		writeMessage(w, http.StatusNotFound, "No purchases found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"purchases": purchases,
		"courses":   courses,
	})
}

// setTokenCookie sets the HttpOnly session cookie. The token is also echoed
// in the signin body for non-browser clients using the bearer carrier.
func setTokenCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
