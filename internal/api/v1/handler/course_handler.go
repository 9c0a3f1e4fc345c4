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

// CourseHandler handles the public catalogue and purchasing.
type CourseHandler struct {
	courses  service.CourseService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewCourseHandler(courses service.CourseService, v *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, userAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /course/preview", h.preview)
	mux.Handle("POST /course/purchase", userAuth(http.HandlerFunc(h.purchase)))
}

func (h *CourseHandler) preview(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.Preview(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list courses")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if len(courses) == 0 {
		writeMessage(w, http.StatusNotFound, "Courses not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *CourseHandler) purchase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req dto.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	err := h.courses.Purchase(r.Context(), userID, req.CourseID)
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		writeMessage(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, service.ErrAlreadyPurchased):
		writeMessage(w, http.StatusBadRequest, "You have already bought this course")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to create purchase")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeMessage(w, http.StatusOK, "You have successfully bought the course")
	}
}
