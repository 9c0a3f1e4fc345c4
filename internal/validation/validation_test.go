package validation

import (
	"testing"

	"coursehub/internal/api/v1/dto"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestSignupFirstErrorFollowsFieldOrder(t *testing.T) {
	v := New(true)

	// Both firstName and email are invalid; the reported violation must be
	// the first declared field.
	req := dto.SignupRequest{
		FirstName: "Jo",
		LastName:  "Dane",
		Email:     "not-an-email",
		Password:  "Sup3r$ecret",
	}
	err := v.Struct(&req)
	require.Error(t, err)
	require.Equal(t, "firstName must be at least 3 characters", FirstError(err))
}

func TestSignupEmailValidation(t *testing.T) {
	v := New(true)

	req := dto.SignupRequest{
		FirstName: "Jordan",
		LastName:  "Dane",
		Email:     "not-an-email",
		Password:  "Sup3r$ecret",
	}
	err := v.Struct(&req)
	require.Error(t, err)
	require.Equal(t, "email must be a valid email", FirstError(err))
}

func TestStrictPassword(t *testing.T) {
	strict := New(true)
	loose := New(false)

	req := dto.SignupRequest{
		FirstName: "Jordan",
		LastName:  "Dane",
		Email:     "jordan@example.com",
		Password:  "password123", // no uppercase, no symbol
	}

	err := strict.Struct(&req)
	require.Error(t, err)
	require.Equal(t, "password must contain an uppercase letter, a lowercase letter, a digit and a symbol", FirstError(err))

	require.NoError(t, loose.Struct(&req))

	req.Password = "Sup3r$ecret"
	require.NoError(t, strict.Struct(&req))
}

func TestPasswordLengthBounds(t *testing.T) {
	v := New(false)

	req := dto.SignupRequest{
		FirstName: "Jordan",
		LastName:  "Dane",
		Email:     "jordan@example.com",
		Password:  "short",
	}
	err := v.Struct(&req)
	require.Error(t, err)
	require.Equal(t, "password must be at least 8 characters", FirstError(err))
}

func TestCourseCreateValidation(t *testing.T) {
	v := New(true)

	ok := dto.CourseCreateRequest{
		Title:       "Intro to Go",
		Description: "A short course",
		Price:       floatPtr(0),
		ImageURL:    "https://img.example.com/go.png",
	}
	require.NoError(t, v.Struct(&ok), "free course must be valid")

	missingPrice := dto.CourseCreateRequest{
		Title:       "Intro to Go",
		Description: "A short course",
		ImageURL:    "https://img.example.com/go.png",
	}
	err := v.Struct(&missingPrice)
	require.Error(t, err)
	require.Equal(t, "price is required", FirstError(err))

	negativePrice := ok
	negativePrice.Price = floatPtr(-1)
	err = v.Struct(&negativePrice)
	require.Error(t, err)
	require.Equal(t, "price must be 0 or greater", FirstError(err))

	shortTitle := ok
	shortTitle.Title = "Go"
	err = v.Struct(&shortTitle)
	require.Error(t, err)
	require.Equal(t, "title must be at least 3 characters", FirstError(err))
}

func TestFirstErrorNonValidation(t *testing.T) {
	require.Equal(t, "", FirstError(nil))
}
