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

// CreatorHandler handles creator accounts and course authoring.
type CreatorHandler struct {
	creators     service.CreatorService
	images       service.ImageService
	validate     *validator.Validate
	cookieSecure bool
	logger       zerolog.Logger
}

func NewCreatorHandler(creators service.CreatorService, images service.ImageService, v *validator.Validate, cookieSecure bool, logger zerolog.Logger) *CreatorHandler {
	return &CreatorHandler{creators: creators, images: images, validate: v, cookieSecure: cookieSecure, logger: logger}
}

// RegisterRoutes mounts v1 creator routes
func (h *CreatorHandler) RegisterRoutes(mux *http.ServeMux, creatorAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /creator/signup", h.signup)
	mux.HandleFunc("POST /creator/signin", h.signin)
	mux.Handle("POST /creator/course", creatorAuth(http.HandlerFunc(h.createCourse)))
	mux.Handle("PUT /creator/course", creatorAuth(http.HandlerFunc(h.updateCourse)))
	mux.Handle("DELETE /creator/course", creatorAuth(http.HandlerFunc(h.deleteCourse)))
	mux.Handle("GET /creator/course/bulk", creatorAuth(http.HandlerFunc(h.listCourses)))
	mux.Handle("POST /creator/course/image", creatorAuth(http.HandlerFunc(h.imageUploadURL)))
}

func (h *CreatorHandler) signup(w http.ResponseWriter, r *http.Request) {
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

	err := h.creators.Signup(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email is already taken")
	case err != nil:
		h.logger.Error().Err(err).Msg("creator signup failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeMessage(w, http.StatusOK, "You are signed up")
	}
}

func (h *CreatorHandler) signin(w http.ResponseWriter, r *http.Request) {
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

	token, err := h.creators.Signin(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, "Creator not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Incorrect credentials")
	case err != nil:
		h.logger.Error().Err(err).Msg("creator signin failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		setTokenCookie(w, token, h.cookieSecure)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "You are signed in",
			"token":   token,
		})
	}
}

func (h *CreatorHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.CreatorID(r.Context())

	var req dto.CourseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	courseID, err := h.creators.CreateCourse(r.Context(), creatorID, req.Title, req.Description, *req.Price, req.ImageURL)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create course")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Course created",
		"courseId": courseID,
	})
}

func (h *CreatorHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.CreatorID(r.Context())

	var req dto.CourseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	err := h.creators.UpdateCourse(r.Context(), creatorID, req.CourseID, req.Title, req.Description, *req.Price, req.ImageURL)
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		writeMessage(w, http.StatusNotFound, "Course not found")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to update course")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeMessage(w, http.StatusOK, "Course updated")
	}
}

func (h *CreatorHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.CreatorID(r.Context())

	var req dto.CourseDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	err := h.creators.DeleteCourse(r.Context(), creatorID, req.CourseID)
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		writeMessage(w, http.StatusNotFound, "Course not found")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to delete course")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeMessage(w, http.StatusOK, "Course deleted")
	}
}

func (h *CreatorHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.CreatorID(r.Context())

	courses, err := h.creators.Courses(r.Context(), creatorID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list creator courses")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if len(courses) == 0 {
		writeMessage(w, http.StatusNotFound, "Courses not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *CreatorHandler) imageUploadURL(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Trim()
	if err := h.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, validation.FirstError(err))
		return
	}

	uploadURL, publicURL, err := h.images.UploadURL(r.Context(), req.Filename)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create upload URL")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"uploadUrl": uploadURL,
		"imageUrl":  publicURL,
	})
}
