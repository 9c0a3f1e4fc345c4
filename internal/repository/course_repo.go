package repository

import (
	"context"

	"coursehub/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CourseRepository defines the interface for interacting with course data.
// UpdateOwned and DeleteOwned filter on both the course id and the creator
// id so a creator can never touch another creator's course.
type CourseRepository interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Course, error)
	UpdateOwned(ctx context.Context, courseID, creatorID string, patch *model.Course) error
	DeleteOwned(ctx context.Context, courseID, creatorID string) error
}

type courseRepo struct {
	store *Store
}

func NewCourseRepo(store *Store) CourseRepository {
	return &courseRepo{store: store}
}

func (r *courseRepo) Create(ctx context.Context, c *model.Course) error {
	id, err := insertOne(ctx, r.store.col(ColCourses), c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetByID returns (nil, nil) when the course does not exist.
func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, nil
	}
	return findOne[model.Course](ctx, r.store.col(ColCourses), bson.D{{Key: "_id", Value: oid}})
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	return findMany[model.Course](ctx, r.store.col(ColCourses), bson.D{})
}

func (r *courseRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Course, error) {
	oid, err := parseID(creatorID)
	if err != nil {
		return []model.Course{}, nil
	}
	return findMany[model.Course](ctx, r.store.col(ColCourses), bson.D{{Key: "creatorId", Value: oid}})
}

// UpdateOwned updates the course matched by both _id and creatorId.
// ErrNotFound covers both a missing course and one owned by someone else.
func (r *courseRepo) UpdateOwned(ctx context.Context, courseID, creatorID string, patch *model.Course) error {
	cid, err := parseID(courseID)
	if err != nil {
		return err
	}
	oid, err := parseID(creatorID)
	if err != nil {
		return err
	}

	filter := bson.D{{Key: "_id", Value: cid}, {Key: "creatorId", Value: oid}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: patch.Title},
		{Key: "description", Value: patch.Description},
		{Key: "price", Value: patch.Price},
		{Key: "imageUrl", Value: patch.ImageURL},
	}}}

	res, err := r.store.col(ColCourses).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwned deletes the course matched by both _id and creatorId.
func (r *courseRepo) DeleteOwned(ctx context.Context, courseID, creatorID string) error {
	cid, err := parseID(courseID)
	if err != nil {
		return err
	}
	oid, err := parseID(creatorID)
	if err != nil {
		return err
	}

	filter := bson.D{{Key: "_id", Value: cid}, {Key: "creatorId", Value: oid}}
	res, err := r.store.col(ColCourses).DeleteOne(ctx, filter)
	if err != nil {
		return wrapError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
