package service

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/model"
	"coursehub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrAlreadyPurchased = errors.New("course already purchased")
)

// CourseService covers the public catalogue and purchasing.
type CourseService interface {
	Preview(ctx context.Context) ([]model.Course, error)
	Purchase(ctx context.Context, userID, courseID string) error
}

type courseService struct {
	courses   repository.CourseRepository
	purchases repository.PurchaseRepository

	// Both checks are off by default: the baseline contract is permissive
	// about missing courses and duplicate purchases.
	enforceCourseExists      bool
	preventDuplicatePurchase bool
}

func NewCourseService(
	courses repository.CourseRepository,
	purchases repository.PurchaseRepository,
	enforceCourseExists bool,
	preventDuplicatePurchase bool,
) CourseService {
	return &courseService{
		courses:                  courses,
		purchases:                purchases,
		enforceCourseExists:      enforceCourseExists,
		preventDuplicatePurchase: preventDuplicatePurchase,
	}
}

func (s *courseService) Preview(ctx context.Context) ([]model.Course, error) {
	return s.courses.List(ctx)
}

func (s *courseService) Purchase(ctx context.Context, userID, courseID string) error {
	if s.enforceCourseExists {
		course, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("lookup course: %w", err)
		}
		if course == nil {
			return ErrCourseNotFound
		}
	}
	if s.preventDuplicatePurchase {
		exists, err := s.purchases.Exists(ctx, userID, courseID)
		if err != nil {
			return fmt.Errorf("check purchase: %w", err)
		}
		if exists {
			return ErrAlreadyPurchased
		}
	}

	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	cid, err := bson.ObjectIDFromHex(courseID)
	if err != nil {
		return fmt.Errorf("parse course id: %w", err)
	}

	purchase := &model.Purchase{UserID: uid, CourseID: cid}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}
