package service

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/auth"
	"coursehub/internal/model"
	"coursehub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CreatorService covers creator accounts and their course catalogue.
type CreatorService interface {
	Signup(ctx context.Context, firstName, lastName, email, password string) error
	Signin(ctx context.Context, email, password string) (string, error)
	CreateCourse(ctx context.Context, creatorID, title, description string, price float64, imageURL string) (string, error)
	UpdateCourse(ctx context.Context, creatorID, courseID, title, description string, price float64, imageURL string) error
	DeleteCourse(ctx context.Context, creatorID, courseID string) error
	Courses(ctx context.Context, creatorID string) ([]model.Course, error)
}

type creatorService struct {
	creators repository.CreatorRepository
	courses  repository.CourseRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
}

func NewCreatorService(
	creators repository.CreatorRepository,
	courses repository.CourseRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
) CreatorService {
	return &creatorService{creators: creators, courses: courses, hasher: hasher, tokens: tokens}
}

func (s *creatorService) Signup(ctx context.Context, firstName, lastName, email, password string) error {
	existing, err := s.creators.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup by email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	creator := &model.Creator{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
	}
	if err := s.creators.Create(ctx, creator); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create creator: %w", err)
	}
	return nil
}

func (s *creatorService) Signin(ctx context.Context, email, password string) (string, error) {
	creator, err := s.creators.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup by email: %w", err)
	}
	if creator == nil {
		return "", ErrAccountNotFound
	}
	if !s.hasher.Verify(password, creator.Password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(creator.ID.Hex())
}

func (s *creatorService) CreateCourse(ctx context.Context, creatorID, title, description string, price float64, imageURL string) (string, error) {
	oid, err := bson.ObjectIDFromHex(creatorID)
	if err != nil {
		return "", fmt.Errorf("parse creator id: %w", err)
	}
	course := &model.Course{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CreatorID:   oid,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return "", fmt.Errorf("create course: %w", err)
	}
	return course.ID.Hex(), nil
}

// UpdateCourse updates a course only when it is owned by the creator.
// Returns ErrCourseNotFound for a missing or foreign course.
func (s *creatorService) UpdateCourse(ctx context.Context, creatorID, courseID, title, description string, price float64, imageURL string) error {
	patch := &model.Course{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
	err := s.courses.UpdateOwned(ctx, courseID, creatorID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

// DeleteCourse deletes a course only when it is owned by the creator.
func (s *creatorService) DeleteCourse(ctx context.Context, creatorID, courseID string) error {
	err := s.courses.DeleteOwned(ctx, courseID, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

func (s *creatorService) Courses(ctx context.Context, creatorID string) ([]model.Course, error) {
	return s.courses.ListByCreator(ctx, creatorID)
}
