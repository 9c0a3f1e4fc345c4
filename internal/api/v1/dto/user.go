package dto

import "strings"

// SignupRequest is shared by user and creator signup. Field order matters:
// validation reports the first violated field in declaration order.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=30"`
	LastName  string `json:"lastName" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=30,password"`
}

// Trim normalizes whitespace before validation.
func (r *SignupRequest) Trim() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// SigninRequest is shared by user and creator signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SigninRequest) Trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}
