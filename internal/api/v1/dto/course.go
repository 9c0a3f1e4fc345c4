package dto

import "strings"

// CourseCreateRequest is the body for POST /creator/course. Price is a
// pointer so that a free course (0) still satisfies required.
type CourseCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=3,max=100"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
}

func (r *CourseCreateRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// CourseUpdateRequest is the body for PUT /creator/course.
type CourseUpdateRequest struct {
	CourseID    string   `json:"courseId" validate:"required"`
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=3,max=100"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
}

func (r *CourseUpdateRequest) Trim() {
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// CourseDeleteRequest is the body for DELETE /creator/course.
type CourseDeleteRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

func (r *CourseDeleteRequest) Trim() {
	r.CourseID = strings.TrimSpace(r.CourseID)
}

// PurchaseRequest is the body for POST /course/purchase.
type PurchaseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

func (r *PurchaseRequest) Trim() {
	r.CourseID = strings.TrimSpace(r.CourseID)
}

// CourseImageRequest asks for a presigned upload URL for a course image.
type CourseImageRequest struct {
	Filename string `json:"filename" validate:"required"`
}

func (r *CourseImageRequest) Trim() {
	r.Filename = strings.TrimSpace(r.Filename)
}
