package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coursehub/internal/auth"
	"coursehub/internal/model"
	"coursehub/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService interface {
	Signup(ctx context.Context, firstName, lastName, email, password string) error
	Signin(ctx context.Context, email, password string) (string, error)
	// Purchases returns the user's purchases with each referenced course
	// resolved. The course slice is index-aligned with the purchases; an
	// entry is nil when the course no longer exists or its lookup failed.
	Purchases(ctx context.Context, userID string) ([]model.Purchase, []*model.Course, error)
}

type userService struct {
	users     repository.UserRepository
	courses   repository.CourseRepository
	purchases repository.PurchaseRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenService
}

func NewUserService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	purchases repository.PurchaseRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
) UserService {
	return &userService{users: users, courses: courses, purchases: purchases, hasher: hasher, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, firstName, lastName, email, password string) error {
	existing, err := s.users.GetByEmail(ctx, email)
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

	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the authoritative guard; a concurrent signup
		// with the same email lands here.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup by email: %w", err)
	}
	if user == nil {
		return "", ErrAccountNotFound
	}
	if !s.hasher.Verify(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID.Hex())
}

func (s *userService) Purchases(ctx context.Context, userID string) ([]model.Purchase, []*model.Course, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(purchases) == 0 {
		return purchases, nil, nil
	}

	// Resolve each course concurrently. The slice is index-aligned with the
	// purchases so the response preserves purchase order; a failed lookup
	// leaves a nil entry instead of failing the whole request.
	courses := make([]*model.Course, len(purchases))
	var wg sync.WaitGroup
	for i, p := range purchases {
		wg.Add(1)
		go func(i int, courseID string) {
			defer wg.Done()
			course, err := s.courses.GetByID(ctx, courseID)
			if err != nil {
				return
			}
			courses[i] = course
		}(i, p.CourseID.Hex())
	}
	wg.Wait()

	return purchases, courses, nil
}
